package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// ListStudents returns the roster in display order.
func (s *Service) ListStudents(ctx context.Context, graduationID string) ([]*domain.Student, error) {
	if _, err := s.authorize(ctx, graduationID); err != nil {
		return nil, err
	}
	list, err := s.students.ListByGraduation(ctx, graduationID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return list, nil
}

// CreateStudent appends a student to the roster.
func (s *Service) CreateStudent(ctx context.Context, input CreateStudentInput) (*domain.Student, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	editor, err := s.authorize(ctx, input.GraduationID)
	if err != nil {
		return nil, err
	}

	st := &domain.Student{
		ID:              uuid.NewString(),
		GraduationID:    input.GraduationID,
		Name:            strings.TrimSpace(input.Name),
		AccessType:      input.AccessType,
		ProfilePhotoURL: optional(input.ProfilePhotoURL),
		CoverPhotoURL:   optional(input.CoverPhotoURL),
		PDFURL:          optional(input.PDFURL),
		Speech:          optional(input.Speech),
	}
	if st.AccessType == "" {
		st.AccessType = domain.AccessPublic
	}

	switch st.AccessType {
	case domain.AccessPassword:
		hash, err := s.hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		st.PasswordHash = &hash
	case domain.AccessLink:
		link := newLinkID()
		st.LinkID = &link
	}

	created, err := s.students.Create(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	s.changed(ctx, input.GraduationID)

	s.log.InfoContext(ctx, "student created",
		slog.String("graduation_id", input.GraduationID),
		slog.String("student_id", created.ID),
		slog.String("editor_id", editor.ID),
	)
	return created, nil
}

// UpdateStudent applies a partial update. Replaced or cleared uploads are
// queued for deletion.
func (s *Service) UpdateStudent(ctx context.Context, input UpdateStudentInput) (*domain.Student, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, input.GraduationID); err != nil {
		return nil, err
	}

	current, err := s.students.GetByID(ctx, input.GraduationID, input.StudentID)
	if err != nil {
		return nil, err
	}

	params := domain.StudentUpdateParams{
		ProfilePhotoURL: trimmed(input.ProfilePhotoURL),
		CoverPhotoURL:   trimmed(input.CoverPhotoURL),
		PDFURL:          trimmed(input.PDFURL),
		Speech:          input.Speech,
	}
	if input.Name != nil {
		params.Name = trimmed(input.Name)
	}
	if err := s.applyAccess(current, input, &params); err != nil {
		return nil, err
	}

	updated, err := s.students.Update(ctx, input.GraduationID, input.StudentID, params)
	if err != nil {
		return nil, fmt.Errorf("update student %s: %w", input.StudentID, err)
	}

	s.release(ctx, "student:"+current.ID, dropped(current.AssetURLs(), updated.AssetURLs()))
	s.changed(ctx, input.GraduationID)
	return updated, nil
}

// applyAccess fills the credential fields of params for the resulting access type.
// Credentials of the previous access type are cleared when it changes.
func (s *Service) applyAccess(current *domain.Student, input UpdateStudentInput, params *domain.StudentUpdateParams) error {
	access := current.AccessType
	if input.AccessType != nil {
		access = *input.AccessType
		params.AccessType = input.AccessType
	}

	empty := ""
	switch access {
	case domain.AccessPassword:
		if input.Password != nil {
			hash, err := s.hashPassword(*input.Password)
			if err != nil {
				return err
			}
			params.PasswordHash = &hash
		} else if current.PasswordHash == nil || *current.PasswordHash == "" {
			return domain.NewValidationError("password", "required for password access")
		}
		if current.LinkID != nil {
			params.LinkID = &empty
		}
	case domain.AccessLink:
		if current.LinkID == nil || *current.LinkID == "" {
			link := newLinkID()
			params.LinkID = &link
		}
		if current.PasswordHash != nil {
			params.PasswordHash = &empty
		}
	default:
		if current.PasswordHash != nil {
			params.PasswordHash = &empty
		}
		if current.LinkID != nil {
			params.LinkID = &empty
		}
	}
	return nil
}

// DeleteStudent removes a student and queues its uploads for deletion.
func (s *Service) DeleteStudent(ctx context.Context, graduationID, studentID string) error {
	editor, err := s.authorize(ctx, graduationID)
	if err != nil {
		return err
	}
	if !domain.ValidIdentifier(studentID) {
		return domain.NewValidationError("student_id", "invalid identifier")
	}

	deleted, err := s.students.Delete(ctx, graduationID, studentID)
	if err != nil {
		return fmt.Errorf("delete student %s: %w", studentID, err)
	}

	s.release(ctx, "student:"+deleted.ID, deleted.AssetURLs())
	s.changed(ctx, graduationID)

	s.log.InfoContext(ctx, "student deleted",
		slog.String("graduation_id", graduationID),
		slog.String("student_id", studentID),
		slog.String("editor_id", editor.ID),
	)
	return nil
}

// ReorderStudents assigns dense positions following ids. Every student of the
// graduation must be listed exactly once.
func (s *Service) ReorderStudents(ctx context.Context, graduationID string, ids []string) error {
	if _, err := s.authorize(ctx, graduationID); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		roster, err := s.students.ListByGraduation(txCtx, graduationID)
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}
		if err := checkPermutation(roster, ids); err != nil {
			return err
		}
		return s.students.SetOrder(txCtx, graduationID, ids)
	})
	if err != nil {
		return err
	}

	s.changed(ctx, graduationID)
	return nil
}

func checkPermutation(roster []*domain.Student, ids []string) error {
	if len(ids) != len(roster) {
		return domain.NewValidationError("student_ids", "must list every student exactly once")
	}
	known := make(map[string]bool, len(roster))
	for _, st := range roster {
		known[st.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return domain.NewValidationError("student_ids", "unknown or duplicate student "+id)
		}
		delete(known, id)
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	raw, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash student password: %w", err)
	}
	return string(raw), nil
}

func newLinkID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
