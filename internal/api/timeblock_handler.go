package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwheel/planwheel-server/internal/apperr"
)

type timeBlockRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type timeBlockView struct {
	ID        uint   `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (h *handler) blockRange(req timeBlockRequest) (start, end time.Time, err error) {
	start, err = h.parseDateTime(req.StartTime)
	if err != nil {
		return
	}
	end, err = h.parseDateTime(req.EndTime)
	return
}

func (h *handler) createTimeBlock(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req timeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}
	start, end, err := h.blockRange(req)
	if err != nil {
		h.fail(c, err)
		return
	}

	block, err := h.blocks.Create(c.Request.Context(), currentUserID(c), taskID, start, end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": block.ID})
}

func (h *handler) updateTimeBlock(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	blockID, err := pathID(c, "timeBlockId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req timeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}
	start, end, err := h.blockRange(req)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.blocks.Update(c.Request.Context(), currentUserID(c), taskID, blockID, start, end); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) deleteTimeBlock(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	blockID, err := pathID(c, "timeBlockId")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.blocks.Delete(c.Request.Context(), currentUserID(c), taskID, blockID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// periodView lists tasks with their blocks for a window of whole days
// starting at startDate.
func (h *handler) periodView(c *gin.Context) {
	startDate, err := h.parseDate(c.Query("startDate"))
	if err != nil {
		h.fail(c, err)
		return
	}
	rangeDays, err := strconv.Atoi(c.DefaultQuery("range", "1"))
	if err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}

	view, err := h.blocks.PeriodView(c.Request.Context(), currentUserID(c), startDate, rangeDays)
	if err != nil {
		h.fail(c, err)
		return
	}

	type taskBlocksView struct {
		ID         uint            `json:"id"`
		Name       string          `json:"name"`
		Status     string          `json:"status"`
		TimeBlocks []timeBlockView `json:"timeBlocks"`
	}
	items := make([]taskBlocksView, 0, len(view))
	for _, entry := range view {
		blocks := make([]timeBlockView, 0, len(entry.Blocks))
		for _, b := range entry.Blocks {
			blocks = append(blocks, timeBlockView{
				ID:        b.ID,
				StartTime: b.StartTime.Format(dateTimeFormat),
				EndTime:   b.EndTime.Format(dateTimeFormat),
			})
		}
		items = append(items, taskBlocksView{
			ID:         entry.TaskID,
			Name:       entry.Name,
			Status:     entry.Status,
			TimeBlocks: blocks,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}
