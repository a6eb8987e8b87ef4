package handler

import (
	"encoding/json"
	"net/http"

	"menu-app/internal/model"
	"menu-app/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps the size of a menu item request body.
const maxBodyBytes = 64 * 1024

// CourseStat is the presentation form of a course average.
type CourseStat struct {
	Course  model.Course `json:"course"`
	Average float64      `json:"average"`
	Count   int          `json:"count"`
	Display string       `json:"display"`
}

// StatsResponse is returned by GET /api/menu/stats.
type StatsResponse struct {
	TotalItems int          `json:"totalItems"`
	Averages   []CourseStat `json:"averages"`
}

// CourseCount is one entry of the course filter list.
type CourseCount struct {
	Course model.Course `json:"course"`
	Count  int          `json:"count"`
}

// CoursesResponse is returned by GET /api/menu/courses.
type CoursesResponse struct {
	Total   int           `json:"total"`
	Courses []CourseCount `json:"courses"`
}

// RemoveResponse is returned by DELETE /api/menu/items/{id}.
type RemoveResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// RegisterRoutes mounts the menu endpoints on r.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/items", h.List)
		r.Post("/items", h.Create)
		r.Get("/items/{id}", h.GetByID)
		r.Delete("/items/{id}", h.Remove)
		r.Get("/stats", h.Stats)
		r.Get("/courses", h.Courses)
	})
}

// List handles GET /api/menu/items, optionally filtered by ?course=.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	courseName := r.URL.Query().Get("course")

	var (
		items []model.MenuItem
		err   error
	)
	if courseName == "" {
		items, err = h.service.GetAll(r.Context())
	} else {
		course, parseErr := model.ParseCourse(courseName)
		if parseErr != nil {
			writeDomainError(w, r, parseErr, h.logger)
			return
		}
		items, err = h.service.GetItemsByCourse(r.Context(), course)
	}
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/menu/items/{id}.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/menu/items.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.MenuItemForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	newItem, err := service.ParseForm(form)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	item, err := h.service.AddItem(r.Context(), *newItem)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Remove handles DELETE /api/menu/items/{id}. Unknown IDs answer 200 with
// removed set to false.
func (h *MenuHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.service.RemoveItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, RemoveResponse{ID: id, Removed: removed})
}

// Stats handles GET /api/menu/stats.
func (h *MenuHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	resp := StatsResponse{
		TotalItems: stats.TotalItems,
		Averages:   make([]CourseStat, 0, len(stats.Averages)),
	}
	for _, avg := range stats.Averages {
		resp.Averages = append(resp.Averages, CourseStat{
			Course:  avg.Course,
			Average: avg.Average,
			Count:   avg.Count,
			Display: displayAverage(avg),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Courses handles GET /api/menu/courses.
func (h *MenuHandler) Courses(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	counts := make(map[model.Course]int, len(model.AllCourses))
	for _, item := range items {
		counts[item.Course]++
	}

	resp := CoursesResponse{
		Total:   len(items),
		Courses: make([]CourseCount, 0, len(model.AllCourses)),
	}
	for _, course := range model.AllCourses {
		resp.Courses = append(resp.Courses, CourseCount{Course: course, Count: counts[course]})
	}

	writeJSON(w, http.StatusOK, resp)
}

// displayAverage renders an average as "$6.00", or "N/A" for an empty course.
func displayAverage(avg model.CourseAverage) string {
	if avg.Count == 0 {
		return "N/A"
	}
	return "$" + decimal.NewFromFloat(avg.Average).StringFixed(2)
}
