package roster

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// VerifyAccess decides whether a visitor may open a student's page.
// Public pages always pass; password pages compare the bcrypt hash;
// link pages require the student's link id. No authentication is needed.
func (s *Service) VerifyAccess(ctx context.Context, graduationID, studentID, password, linkID string) (bool, error) {
	if !domain.ValidIdentifier(graduationID) {
		return false, domain.NewValidationError("graduation_id", "invalid identifier")
	}
	if !domain.ValidIdentifier(studentID) {
		return false, domain.NewValidationError("student_id", "invalid identifier")
	}

	st, err := s.students.GetByID(ctx, graduationID, studentID)
	if err != nil {
		return false, err
	}

	switch st.AccessType {
	case domain.AccessPassword:
		if st.PasswordHash == nil || password == "" {
			return false, nil
		}
		err := bcrypt.CompareHashAndPassword([]byte(*st.PasswordHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("compare student password: %w", err)
		}
	case domain.AccessLink:
		if st.LinkID == nil || linkID == "" {
			return false, nil
		}
		return subtle.ConstantTimeCompare([]byte(*st.LinkID), []byte(linkID)) == 1, nil
	default:
		return true, nil
	}
}

// ResolveLink returns the student a shared link points to.
func (s *Service) ResolveLink(ctx context.Context, linkID string) (*domain.Student, error) {
	if !domain.ValidIdentifier(linkID) {
		return nil, domain.NewValidationError("link_id", "invalid identifier")
	}
	st, err := s.students.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if st.AccessType != domain.AccessLink {
		return nil, fmt.Errorf("student link %s: %w", linkID, domain.ErrNotFound)
	}
	return st, nil
}
