package semester

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/pkg/database"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/attendly/attendly-backend/internal/pkg/sse"
	"github.com/attendly/attendly-backend/internal/pkg/validator"
	"github.com/attendly/attendly-backend/internal/repository/postgresql"
	"github.com/google/uuid"
)

type SemesterServiceImpl struct {
	db *database.DB
	semester.SemesterRepository
	subject.SubjectRepository
	events sse.Publisher
}

func NewSemesterService(
	db *database.DB,
	semesterRepository semester.SemesterRepository,
	subjectRepository subject.SubjectRepository,
	events sse.Publisher,
) semester.SemesterService {
	return &SemesterServiceImpl{
		db:                 db,
		SemesterRepository: semesterRepository,
		SubjectRepository:  subjectRepository,
		events:             events,
	}
}

func mapSemesterToResponse(s semester.Semester) semester.SemesterResponse {
	return semester.SemesterResponse{
		ID:        s.ID,
		Name:      s.Name,
		StartDate: s.StartDate.Format("2006-01-02"),
		EndDate:   s.EndDate.Format("2006-01-02"),
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ListSemesters implements semester.SemesterService.
func (s *SemesterServiceImpl) ListSemesters(ctx context.Context) ([]semester.SemesterResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	semesters, err := s.SemesterRepository.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]semester.SemesterResponse, 0, len(semesters))
	for _, sem := range semesters {
		responses = append(responses, mapSemesterToResponse(sem))
	}
	return responses, nil
}

// GetSemester implements semester.SemesterService.
func (s *SemesterServiceImpl) GetSemester(ctx context.Context, id string) (semester.SemesterResponse, error) {
	if !validator.IsValidUUID(id) {
		return semester.SemesterResponse{}, semester.ErrSemesterNotFound
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return semester.SemesterResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	sem, err := s.SemesterRepository.GetByID(ctx, id, userID)
	if err != nil {
		return semester.SemesterResponse{}, err
	}

	return mapSemesterToResponse(sem), nil
}

// CreateSemester implements semester.SemesterService.
func (s *SemesterServiceImpl) CreateSemester(ctx context.Context, req semester.CreateSemesterRequest) (semester.SemesterResponse, error) {
	if err := req.Validate(); err != nil {
		return semester.SemesterResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return semester.SemesterResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return semester.SemesterResponse{}, fmt.Errorf("failed to generate semester id: %w", err)
	}

	created, err := s.SemesterRepository.Create(ctx, semester.Semester{
		ID:        id.String(),
		UserID:    userID,
		Name:      req.Name,
		StartDate: req.Start,
		EndDate:   req.End,
	})
	if err != nil {
		return semester.SemesterResponse{}, err
	}

	return mapSemesterToResponse(created), nil
}

// UpdateSemester implements semester.SemesterService.
func (s *SemesterServiceImpl) UpdateSemester(ctx context.Context, req semester.UpdateSemesterRequest) (semester.SemesterResponse, error) {
	if err := req.Validate(); err != nil {
		return semester.SemesterResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return semester.SemesterResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	current, err := s.SemesterRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return semester.SemesterResponse{}, err
	}

	if err := req.Apply(&current); err != nil {
		return semester.SemesterResponse{}, err
	}

	updated, err := s.SemesterRepository.Update(ctx, current)
	if err != nil {
		return semester.SemesterResponse{}, err
	}

	return mapSemesterToResponse(updated), nil
}

// DeleteSemester implements semester.SemesterService.
func (s *SemesterServiceImpl) DeleteSemester(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return semester.ErrSemesterNotFound
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var removed []string
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ids, err := s.SubjectRepository.DeleteBySemester(txCtx, id, userID)
		if err != nil {
			return err
		}
		removed = ids

		return s.SemesterRepository.Delete(txCtx, id, userID)
	})
	if err != nil {
		return err
	}

	slog.Info("semester deleted", "semester_id", id, "subjects_removed", len(removed))

	if s.events != nil {
		for _, subjectID := range removed {
			s.events.Publish(userID, sse.Event{Name: subject.EventDeleted, Data: map[string]string{"id": subjectID}})
		}
		s.events.Publish(userID, sse.Event{Name: semester.EventDeleted, Data: map[string]string{"id": id}})
	}
	return nil
}
