package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/auth"
)

type loginRequest struct {
	Code string `json:"code" binding:"required"`
}

// login exchanges a Google authorization code for a bearer token.
func (h *handler) login(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, apperr.ErrInvalidArguments)
			return
		}

		user, err := h.accounts.Login(c.Request.Context(), req.Code)
		if err != nil {
			h.fail(c, err)
			return
		}
		token, err := tokens.Generate(user.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func (h *handler) profile(c *gin.Context) {
	user, err := h.accounts.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"givenName":    user.GivenName,
		"familyName":   user.FamilyName,
		"image":        user.Image,
		"email":        user.Email,
		"googleLinked": user.GoogleLinked(),
	})
}

func (h *handler) unlinkGoogle(c *gin.Context) {
	if err := h.accounts.Unlink(c.Request.Context(), currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
