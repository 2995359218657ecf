package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
	"github.com/planwheel/planwheel-server/internal/service"
)

type deadlinePayload struct {
	Date string  `json:"date"`
	Time *string `json:"time"`
}

type createTaskRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Deadline    *deadlinePayload `json:"deadLine"`
}

type updateTaskRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Deadline    *deadlinePayload `json:"deadLine"`
}

type statusRequest struct {
	Status     string  `json:"status" binding:"required"`
	TargetDate *string `json:"targetDate"`
}

type orderRequest struct {
	Dated      bool    `json:"dated"`
	TargetDate *string `json:"targetDate"`
	TaskList   []uint  `json:"taskList"`
}

type taskItem struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Status   string           `json:"status"`
	Deadline *deadlinePayload `json:"deadLine,omitempty"`
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.ErrInvalidArguments
	}
	return uint(id), nil
}

func (h *handler) deadlineInput(payload *deadlinePayload) (*service.Deadline, error) {
	if payload == nil {
		return nil, nil
	}
	date, err := h.parseDate(payload.Date)
	if err != nil {
		return nil, err
	}
	return &service.Deadline{Date: date, Time: payload.Time}, nil
}

func deadlineView(task model.Task) *deadlinePayload {
	if task.DeadlineDate == nil {
		return nil
	}
	return &deadlinePayload{Date: task.DeadlineDate.Format(dateFormat), Time: task.DeadlineTime}
}

func (h *handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}
	deadline, err := h.deadlineInput(req.Deadline)
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), currentUserID(c), service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": task.ID})
}

func (h *handler) listTasks(c *gin.Context) {
	targetDate, err := h.parseDateParam(c, "targetDate")
	if err != nil {
		h.fail(c, err)
		return
	}
	order := c.DefaultQuery("order", "recent")

	tasks, err := h.tasks.ListTasks(c.Request.Context(), currentUserID(c), order, targetDate, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]taskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskItem{
			ID:       task.ID,
			Name:     task.Name,
			Status:   task.Status.Label(),
			Deadline: deadlineView(task),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

func (h *handler) getTask(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	targetDate, err := h.parseDateParam(c, "targetDate")
	if err != nil {
		h.fail(c, err)
		return
	}

	detail, err := h.tasks.GetTaskDetail(c.Request.Context(), currentUserID(c), taskID, targetDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{
		"name":        detail.Name,
		"description": detail.Description,
		"status":      detail.Status,
		"deadLine": gin.H{
			"date": formatDate(detail.DeadlineDate),
			"time": detail.DeadlineTime,
		},
	}
	if detail.Block != nil {
		resp["timeBlock"] = gin.H{
			"id":        detail.Block.ID,
			"startTime": detail.Block.StartTime.Format(dateTimeFormat),
			"endTime":   detail.Block.EndTime.Format(dateTimeFormat),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) updateTask(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}
	deadline, err := h.deadlineInput(req.Deadline)
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.tasks.UpdateTask(c.Request.Context(), currentUserID(c), taskID, service.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) deleteTask(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.tasks.RemoveTask(c.Request.Context(), currentUserID(c), taskID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) updateStatus(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil {
		parsed, err := h.parseDate(*req.TargetDate)
		if err != nil {
			h.fail(c, err)
			return
		}
		targetDate = &parsed
	}

	if err := h.tasks.UpdateStatus(c.Request.Context(), currentUserID(c), taskID, req.Status, targetDate); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) saveOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidArguments)
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil {
		parsed, err := h.parseDate(*req.TargetDate)
		if err != nil {
			h.fail(c, err)
			return
		}
		targetDate = &parsed
	}

	order, err := h.tasks.SaveOrder(c.Request.Context(), currentUserID(c), req.Dated, targetDate, req.TaskList)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": order.ID})
}

func (h *handler) now() time.Time {
	return time.Now().In(h.loc)
}
