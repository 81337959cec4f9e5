package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

var sectionNames = map[string]bool{"students": true, "messages": true, "speeches": true}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be in [4,31] (got %d)", c.Auth.BcryptCost)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if !strings.HasPrefix(c.Storage.PublicBaseURL, "https://") && !strings.HasPrefix(c.Storage.PublicBaseURL, "http://") {
		return fmt.Errorf("storage.public_base_url must be an http(s) URL (got %q)", c.Storage.PublicBaseURL)
	}

	if err := c.Booklet.validate(); err != nil {
		return fmt.Errorf("booklet: %w", err)
	}
	if err := c.Collab.validate(); err != nil {
		return fmt.Errorf("collab: %w", err)
	}
	if err := c.Assets.validate(); err != nil {
		return fmt.Errorf("assets: %w", err)
	}

	return nil
}

func (b *BookletConfig) validate() error {
	if b.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", b.FetchTimeout)
	}
	if b.MaxPDFBytes <= 0 {
		return fmt.Errorf("max_pdf_bytes must be > 0 (got %d)", b.MaxPDFBytes)
	}
	if b.MaxOutputBytes < b.MaxPDFBytes {
		return fmt.Errorf("max_output_bytes (%d) must be >= max_pdf_bytes (%d)", b.MaxOutputBytes, b.MaxPDFBytes)
	}
	if b.MaxPhotoBytes <= 0 {
		return fmt.Errorf("max_photo_bytes must be > 0 (got %d)", b.MaxPhotoBytes)
	}
	if b.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be >= 1 (got %d)", b.FetchConcurrency)
	}
	if b.CharsPerLine < 20 {
		return fmt.Errorf("chars_per_line must be >= 20 (got %d)", b.CharsPerLine)
	}

	order, err := ParsePageOrder(b.PageOrderRaw)
	if err != nil {
		return fmt.Errorf("page_order: %w", err)
	}
	b.PageOrder = order

	return nil
}

func (c *CollabConfig) validate() error {
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat_interval must be > 0 (got %v)", c.HeartbeatInterval)
	}
	if c.StalenessWindow <= c.HeartbeatInterval {
		return fmt.Errorf("staleness_window (%v) must exceed heartbeat_interval (%v)", c.StalenessWindow, c.HeartbeatInterval)
	}
	if _, err := cron.ParseStandard(c.LockPruneSchedule); err != nil {
		return fmt.Errorf("lock_prune_schedule: %w", err)
	}
	return nil
}

func (a *AssetsConfig) validate() error {
	if _, err := cron.ParseStandard(a.ReaperSchedule); err != nil {
		return fmt.Errorf("reaper_schedule: %w", err)
	}
	if a.ReaperBatchSize <= 0 {
		return fmt.Errorf("reaper_batch_size must be > 0 (got %d)", a.ReaperBatchSize)
	}
	if a.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", a.MaxAttempts)
	}
	return nil
}

// ParsePageOrder parses a comma-separated list of booklet sections
// (e.g. "students,messages,speeches"). An empty string returns a nil slice.
func ParsePageOrder(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	order := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !sectionNames[p] {
			return nil, fmt.Errorf("unknown section %q", p)
		}
		if seen[p] {
			return nil, fmt.Errorf("duplicate section %q", p)
		}
		seen[p] = true
		order = append(order, p)
	}

	return order, nil
}
