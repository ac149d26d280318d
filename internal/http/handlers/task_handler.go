package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"taskmanager/internal/clock"
	"taskmanager/internal/domain"
	"taskmanager/internal/http/dto"
	"taskmanager/internal/priority"
	"taskmanager/internal/service"
	"taskmanager/internal/stats"

	"github.com/charmbracelet/log"
)

type TaskService interface {
	CreateTask(ctx context.Context, in service.TaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListUserTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	ListCategoryTasks(ctx context.Context, categoryID int64) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id int64, upd service.TaskUpdate) (domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	OverdueTasks(ctx context.Context) ([]domain.Task, error)
	Statistics(ctx context.Context) (stats.Report, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in service.CategoryInput) (domain.Category, error)
}

type TaskHandler struct {
	taskService TaskService
	clock       clock.Clock
	classifier  *priority.Classifier
	logger      *log.Logger
}

func New(taskService TaskService, clk clock.Clock, logger *log.Logger) *TaskHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		clock:       clk,
		classifier:  priority.NewClassifier(clk),
		logger:      logger,
	}
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := dto.Decode(r.Body, dto.SchemaCreateTask, &req); err != nil {
		h.writeDecodeError(w, r, err)

		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed creating task")

		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task, h.clock.Today()))
}

// GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed getting task")

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task, h.clock.Today()))
}

// GET /tasks, GET /tasks?user_id=, GET /tasks?category_id=
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []domain.Task
		err   error
	)

	q := r.URL.Query()
	switch {
	case q.Get("user_id") != "":
		id, perr := strconv.ParseInt(q.Get("user_id"), 10, 64)
		if perr != nil {
			h.writeError(w, r, http.StatusBadRequest, service.ErrInvalidID.Error())
			return
		}
		tasks, err = h.taskService.ListUserTasks(r.Context(), id)
	case q.Get("category_id") != "":
		id, perr := strconv.ParseInt(q.Get("category_id"), 10, 64)
		if perr != nil {
			h.writeError(w, r, http.StatusBadRequest, service.ErrInvalidID.Error())
			return
		}
		tasks, err = h.taskService.ListCategoryTasks(r.Context(), id)
	default:
		tasks, err = h.taskService.ListTasks(r.Context())
	}
	if err != nil {
		h.writeServiceError(w, r, err, "failed getting tasks")

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponses(tasks, h.clock.Today()))
}

// PUT /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := dto.Decode(r.Body, dto.SchemaUpdateTask, &req); err != nil {
		h.writeDecodeError(w, r, err)

		return
	}

	upd := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		upd.Priority = &p
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		upd.Status = &s
	}
	if req.DueDate.Set {
		upd.DueDate = &req.DueDate.Date
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, upd)
	if err != nil {
		h.writeServiceError(w, r, err, "failed updating task")

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task, h.clock.Today()))
}

// PATCH /tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed completing task")

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task, h.clock.Today()))
}

// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "failed deleting task")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /tasks/overdue
func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.OverdueTasks(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed getting overdue tasks")

		return
	}

	writeJSON(w, http.StatusOK, toTaskResponses(tasks, h.clock.Today()))
}

func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, http.StatusBadRequest, service.ErrInvalidID.Error())

		return 0, false
	}
	return id, true
}

func (h *TaskHandler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *dto.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:     service.ErrInvalidInput.Error(),
			Details:   ve.Fields,
			RequestID: requestID(r),
		})
	case errors.Is(err, dto.ErrMalformedBody):
		h.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("decode request", "path", r.URL.Path, "err", err, "request_id", requestID(r))
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func (h *TaskHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrDueDateInPast),
		errors.Is(err, service.ErrCategoryNotFound):
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidID):
		h.writeError(w, r, http.StatusBadRequest, service.ErrInvalidID.Error())
	case errors.Is(err, service.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, service.ErrNotFound.Error())
	default:
		h.logger.Error(fallback, "path", r.URL.Path, "err", err, "request_id", requestID(r))
		h.writeError(w, r, http.StatusInternalServerError, fallback)
	}
}

func toTaskResponse(t domain.Task, today domain.Date) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       string(t.Priority),
		PriorityColor:  priority.Color(t.Priority),
		PriorityWeight: priority.Weight(t.Priority),
		Status:         string(t.Status),
		DueDate:        t.DueDate,
		IsOverdue:      stats.IsOverdue(t, today),
		CategoryID:     t.CategoryID,
		UserID:         t.UserID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task, today domain.Date) []dto.TaskResponse {
	response := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toTaskResponse(task, today))
	}
	return response
}
