package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

// CurrentUserKey is the context key under which the auth middleware stores
// the resolved *model.User.
const CurrentUserKey = "current_user"

const dateLayout = "2006-01-02"

// TaskHandler handles the owner-scoped task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending done"`
	Priority    int    `json:"priority" validate:"omitempty,oneof=1 2 3"`
}

// CreateTask godoc
// @Summary Create a task owned by the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task payload"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), user.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		Priority:    req.Priority,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// ListTasks godoc
// @Summary List the caller's tasks, newest first
// @Tags tasks
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Param status query string false "Filter by status" Enums(pending, done)
// @Param priority query int false "Filter by priority" Enums(1, 2, 3)
// @Param created_after query string false "Created on or after this date (YYYY-MM-DD)"
// @Param created_before query string false "Created on or before this date (YYYY-MM-DD)"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	q := repository.TaskQuery{
		OwnerID: user.ID,
		Status:  model.TaskStatus(c.QueryParam("status")),
	}
	if q.Offset, err = intParam(c, "offset", 0); err != nil {
		return err
	}
	if q.Limit, err = intParam(c, "limit", repository.DefaultListLimit); err != nil {
		return err
	}
	if q.Priority, err = intParam(c, "priority", 0); err != nil {
		return err
	}

	if v := c.QueryParam("created_after"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "created_after must be YYYY-MM-DD")
		}
		q.CreatedAfter = &t
	}
	if v := c.QueryParam("created_before"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "created_before must be YYYY-MM-DD")
		}
		q.CreatedBefore = &t
	}

	tasks, err := h.taskService.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// SearchTasks godoc
// @Summary Search the caller's tasks by title or description substring
// @Tags tasks
// @Produce json
// @Param q query string true "Search term"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/search [get]
func (h *TaskHandler) SearchTasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	offset, err := intParam(c, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", repository.DefaultListLimit)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.Search(c.Request().Context(), user.ID, term, offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Fetch one of the caller's tasks by id
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	task, err := h.taskService.Get(c.Request().Context(), uint(id), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// currentUser pulls the resolved user out of the request context. The auth
// middleware always sets it on protected routes; a miss means the route was
// wired without the guard.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(CurrentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return parsed, nil
}
