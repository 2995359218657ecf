package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planwheel/planwheel-server/internal/alert"
	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/service"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02T15:04:05"
)

type handler struct {
	tasks    *service.TaskService
	blocks   *service.TimeBlockService
	accounts *service.AccountService
	notifier *alert.Notifier
	log      *zap.SugaredLogger
	loc      *time.Location
}

// fail translates an error into its transport response. Internal errors
// additionally page the alert channel with the request context.
func (h *handler) fail(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		h.log.Errorw("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		if notifyErr := h.notifier.Notify(alert.Event{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			UserID: currentUserID(c),
			Err:    err,
		}); notifyErr != nil {
			h.log.Warnw("alert delivery failed", "error", notifyErr)
		}
	} else {
		h.log.Infow("request rejected", "method", c.Request.Method, "path", c.Request.URL.Path, "code", e.Code)
	}
	c.JSON(e.Status, gin.H{"code": e.Code, "message": e.Message})
}

// parseDateParam reads an optional yyyy-MM-dd query parameter.
func (h *handler) parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateFormat, raw, h.loc)
	if err != nil {
		return nil, apperr.ErrInvalidDateFormat
	}
	return &t, nil
}

func (h *handler) parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, raw, h.loc)
	if err != nil {
		return time.Time{}, apperr.ErrInvalidDateFormat
	}
	return t, nil
}

// parseDateTime accepts timestamps with or without seconds.
func (h *handler) parseDateTime(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeFormat, raw, h.loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", raw, h.loc)
	if err != nil {
		return time.Time{}, apperr.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}
