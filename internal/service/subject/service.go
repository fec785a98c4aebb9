package subject

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
	"github.com/attendly/attendly-backend/internal/service/projection"
	"github.com/google/uuid"
)

type SubjectServiceImpl struct {
	db *database.DB
	subject.SubjectRepository
	semester.SemesterRepository
	calculator *projection.Calculator
	events     sse.Publisher
}

func NewSubjectService(
	db *database.DB,
	subjectRepository subject.SubjectRepository,
	semesterRepository semester.SemesterRepository,
	calculator *projection.Calculator,
	events sse.Publisher,
) subject.SubjectService {
	return &SubjectServiceImpl{
		db:                 db,
		SubjectRepository:  subjectRepository,
		SemesterRepository: semesterRepository,
		calculator:         calculator,
		events:             events,
	}
}

func (s *SubjectServiceImpl) publish(userID string, name string, data any) {
	if s.events == nil {
		return
	}
	s.events.Publish(userID, sse.Event{Name: name, Data: data})
}

func (s *SubjectServiceImpl) toResponse(sub subject.Subject) subject.SubjectResponse {
	return subject.SubjectResponse{
		ID:              sub.ID,
		SemesterID:      sub.SemesterID,
		SemesterName:    sub.SemesterName,
		Name:            sub.Name,
		Type:            string(sub.Type),
		TotalClasses:    sub.TotalClasses,
		ClassesHeld:     sub.ClassesHeld,
		ClassesAttended: sub.ClassesAttended,
		CreatedAt:       sub.CreatedAt.Format("2006-01-02 15:04:05"),
		Metrics:         s.calculator.Calculate(sub.State()),
	}
}

// ListSubjects implements subject.SubjectService.
func (s *SubjectServiceImpl) ListSubjects(ctx context.Context, filter subject.SubjectFilter) ([]subject.SubjectResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	subjects, err := s.SubjectRepository.List(ctx, filter, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]subject.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		responses = append(responses, s.toResponse(sub))
	}

	return responses, nil
}

// GetSubject implements subject.SubjectService.
func (s *SubjectServiceImpl) GetSubject(ctx context.Context, id string) (subject.SubjectResponse, error) {
	if !validator.IsValidUUID(id) {
		return subject.SubjectResponse{}, subject.ErrSubjectNotFound
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return subject.SubjectResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	sub, err := s.SubjectRepository.GetByID(ctx, id, userID)
	if err != nil {
		return subject.SubjectResponse{}, err
	}

	return s.toResponse(sub), nil
}

// CreateSubject implements subject.SubjectService.
func (s *SubjectServiceImpl) CreateSubject(ctx context.Context, req subject.CreateSubjectRequest) (subject.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return subject.SubjectResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	sem, err := s.SemesterRepository.GetByID(ctx, req.SemesterID, userID)
	if err != nil {
		return subject.SubjectResponse{}, err
	}

	state := req.State()
	if err := state.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return subject.SubjectResponse{}, fmt.Errorf("failed to generate subject id: %w", err)
	}

	created, err := s.SubjectRepository.Create(ctx, subject.Subject{
		ID:              id.String(),
		UserID:          userID,
		SemesterID:      sem.ID,
		Name:            req.Name,
		Type:            subject.Type(req.Type),
		TotalClasses:    state.TotalClasses,
		ClassesHeld:     state.ClassesHeld,
		ClassesAttended: state.ClassesAttended,
	})
	if err != nil {
		return subject.SubjectResponse{}, err
	}
	created.SemesterName = &sem.Name

	resp := s.toResponse(created)
	s.publish(userID, subject.EventUpdated, resp)
	return resp, nil
}

// UpdateSubject implements subject.SubjectService.
// The row stays locked between read and write so a concurrent mark is not lost.
func (s *SubjectServiceImpl) UpdateSubject(ctx context.Context, req subject.UpdateSubjectRequest) (subject.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return subject.SubjectResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var updated subject.Subject
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.SubjectRepository.LockByID(txCtx, req.ID, userID)
		if err != nil {
			return err
		}

		req.Apply(&current)
		if err := current.State().Validate(); err != nil {
			return err
		}

		updated, err = s.SubjectRepository.Update(txCtx, current)
		return err
	})
	if err != nil {
		return subject.SubjectResponse{}, err
	}

	resp := s.toResponse(updated)
	s.publish(userID, subject.EventUpdated, resp)
	return resp, nil
}

// MarkAttendance implements subject.SubjectService.
func (s *SubjectServiceImpl) MarkAttendance(ctx context.Context, req subject.MarkAttendanceRequest) (subject.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return subject.SubjectResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return subject.SubjectResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	updated, err := s.SubjectRepository.MarkAttendance(ctx, req.ID, userID, *req.Attended)
	if err != nil {
		return subject.SubjectResponse{}, err
	}

	slog.Debug("attendance marked",
		"subject_id", updated.ID,
		"attended", *req.Attended,
		"classes_held", updated.ClassesHeld,
		"classes_attended", updated.ClassesAttended,
	)

	resp := s.toResponse(updated)
	s.publish(userID, subject.EventUpdated, resp)
	return resp, nil
}

// DeleteSubject implements subject.SubjectService.
func (s *SubjectServiceImpl) DeleteSubject(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return subject.ErrSubjectNotFound
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if err := s.SubjectRepository.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.publish(userID, subject.EventDeleted, map[string]string{"id": id})
	return nil
}
