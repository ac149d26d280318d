package handlers

import (
	"errors"
	"net/http"
	"taskmanager/internal/domain"
	"taskmanager/internal/http/dto"
	"taskmanager/internal/priority"
	"taskmanager/internal/service"
)

// GET /
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.taskService.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed building dashboard")

		return
	}

	today := h.clock.Today()
	writeJSON(w, http.StatusOK, dto.DashboardResponse{
		Statistics:   dash.Statistics,
		OverdueTasks: toTaskResponses(dash.Overdue, today),
		RecentTasks:  toTaskResponses(dash.Recent, today),
	})
}

// GET /stats
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	report, err := h.taskService.Statistics(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed computing statistics")

		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GET /priority?due_date=YYYY-MM-DD
func (h *TaskHandler) Priority(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("due_date")
	if raw == "" {
		h.writeError(w, r, http.StatusBadRequest, "due_date is required")

		return
	}

	due, p, err := h.classifier.Evaluate(raw)
	if err != nil {
		if errors.Is(err, priority.ErrInvalidInput) {
			h.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.writeServiceError(w, r, err, "failed calculating priority")
		return
	}

	writeJSON(w, http.StatusOK, dto.PriorityResponse{
		DueDate:  due,
		Priority: string(p),
		Color:    priority.Color(p),
		Weight:   priority.Weight(p),
	})
}

// GET /categories
func (h *TaskHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taskService.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed getting categories")

		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// POST /categories
func (h *TaskHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := dto.Decode(r.Body, dto.SchemaCreateCategory, &req); err != nil {
		h.writeDecodeError(w, r, err)

		return
	}

	category, err := h.taskService.CreateCategory(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed creating category")

		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func toCategoryResponse(c domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Color:       c.Color,
		Description: c.Description,
	}
}
