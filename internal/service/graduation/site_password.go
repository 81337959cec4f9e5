package graduation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

// SetSitePassword protects the public site. An empty password removes the protection.
func (s *Service) SetSitePassword(ctx context.Context, id, password string) error {
	var hash string
	if password != "" {
		if err := validatePassword(password); err != nil {
			return err
		}
		raw, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("hash site password: %w", err)
		}
		hash = string(raw)
	}

	_, err := s.updateConfig(ctx, id, func(cfg *domain.GraduationConfig) {
		cfg.SitePasswordHash = hash
	})
	return err
}

// VerifySitePassword checks a visitor's password. A site without a password
// accepts anyone.
func (s *Service) VerifySitePassword(ctx context.Context, id, password string) (bool, error) {
	if !domain.ValidIdentifier(id) {
		return false, domain.NewValidationError("id", "invalid identifier")
	}

	g, err := s.graduations.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if g.Config.SitePasswordHash == "" {
		return true, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(g.Config.SitePasswordHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare site password: %w", err)
	}
}
