package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SubjectHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type subjectHandlerImpl struct {
	subjectService subject.SubjectService
}

func NewSubjectHandler(subjectService subject.SubjectService) SubjectHandler {
	return &subjectHandlerImpl{
		subjectService: subjectService,
	}
}

func (h *subjectHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter subject.SubjectFilter
	if semesterID := r.URL.Query().Get("semester_id"); semesterID != "" {
		filter.SemesterID = &semesterID
	}

	subjects, err := h.subjectService.ListSubjects(r.Context(), filter)
	if err != nil {
		slog.Error("ListSubjects service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, subjects, &response.Meta{TotalItems: int64(len(subjects))})
}

func (h *subjectHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.subjectService.GetSubject(r.Context(), id)
	if err != nil {
		slog.Error("GetSubject service error", "error", err, "subject_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *subjectHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req subject.CreateSubjectRequest

	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("CreateSubject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.subjectService.CreateSubject(r.Context(), req)
	if err != nil {
		slog.Error("CreateSubject service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Subject created successfully", result)
}

func (h *subjectHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req subject.UpdateSubjectRequest

	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("UpdateSubject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.subjectService.UpdateSubject(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSubject service error", "error", err, "subject_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subject updated successfully", result)
}

func (h *subjectHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req subject.MarkAttendanceRequest

	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.subjectService.MarkAttendance(r.Context(), req)
	if err != nil {
		slog.Error("MarkAttendance service error", "error", err, "subject_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

func (h *subjectHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.subjectService.DeleteSubject(r.Context(), id); err != nil {
		slog.Error("DeleteSubject service error", "error", err, "subject_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subject deleted successfully", nil)
}
