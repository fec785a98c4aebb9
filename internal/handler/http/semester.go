package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SemesterHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type semesterHandlerImpl struct {
	semesterService semester.SemesterService
}

func NewSemesterHandler(semesterService semester.SemesterService) SemesterHandler {
	return &semesterHandlerImpl{
		semesterService: semesterService,
	}
}

func (h *semesterHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	semesters, err := h.semesterService.ListSemesters(r.Context())
	if err != nil {
		slog.Error("ListSemesters service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, semesters, &response.Meta{TotalItems: int64(len(semesters))})
}

func (h *semesterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.semesterService.GetSemester(r.Context(), id)
	if err != nil {
		slog.Error("GetSemester service error", "error", err, "semester_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *semesterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req semester.CreateSemesterRequest

	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("CreateSemester decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.semesterService.CreateSemester(r.Context(), req)
	if err != nil {
		slog.Error("CreateSemester service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Semester created successfully", result)
}

func (h *semesterHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req semester.UpdateSemesterRequest

	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("UpdateSemester decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.semesterService.UpdateSemester(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSemester service error", "error", err, "semester_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Semester updated successfully", result)
}

func (h *semesterHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.semesterService.DeleteSemester(r.Context(), id); err != nil {
		slog.Error("DeleteSemester service error", "error", err, "semester_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Semester deleted successfully", nil)
}
