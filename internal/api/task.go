package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type taskService interface {
	List(ctx context.Context, f models.TaskFilter, p models.Page) (models.List[models.Task], error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Today(ctx context.Context, actor models.Actor) ([]models.Task, error)
	Create(ctx context.Context, actor models.Actor, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

type TaskHandler struct {
	tasks  taskService
	logger *zap.Logger
}

func NewTaskHandler(tasks taskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.TaskFilter{
		Status:     q.str("status"),
		Priority:   q.str("priority"),
		AssignedTo: q.id("assigned_to"),
		MatterID:   q.id("matter"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.tasks.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Today handles GET /api/tasks/today
func (h *TaskHandler) Today(c *gin.Context) {
	tasks, err := h.tasks.Today(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, tasks, "")
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	t, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, t, "")
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var in models.TaskInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	t, err := h.tasks.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, t, "Task created successfully")
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.TaskUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	t, err := h.tasks.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, t, "Task updated successfully")
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Task deleted successfully")
}
