package subject

import "context"

// SubjectService defines business logic for subjects. The caller is taken from the JWT in ctx.
type SubjectService interface {
	ListSubjects(ctx context.Context, filter SubjectFilter) ([]SubjectResponse, error)

	GetSubject(ctx context.Context, id string) (SubjectResponse, error)

	CreateSubject(ctx context.Context, req CreateSubjectRequest) (SubjectResponse, error)

	UpdateSubject(ctx context.Context, req UpdateSubjectRequest) (SubjectResponse, error)

	// MarkAttendance records one more held class, present or absent.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (SubjectResponse, error)

	DeleteSubject(ctx context.Context, id string) error
}
