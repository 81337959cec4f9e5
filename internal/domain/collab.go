package domain

import (
	"sort"
	"strings"
	"time"
)

// StalenessWindow is how long a heartbeat or field lock stays meaningful
// without being refreshed.
const StalenessWindow = 5 * time.Minute

// FieldLock is an advisory claim on one form field of a graduation.
type FieldLock struct {
	EditorID string    `json:"editorId"`
	Email    string    `json:"email"`
	LockedAt time.Time `json:"lockedAt"`
}

// IsStale reports whether the lock is older than window at now.
func (l FieldLock) IsStale(now time.Time, window time.Duration) bool {
	return now.Sub(l.LockedAt) > window
}

// FreshLocks returns the locks that are still inside the staleness window.
func FreshLocks(locks map[string]FieldLock, now time.Time, window time.Duration) map[string]FieldLock {
	out := make(map[string]FieldLock, len(locks))
	for path, l := range locks {
		if !l.IsStale(now, window) {
			out[path] = l
		}
	}
	return out
}

// ActiveEditorsExcept returns the ids of editors whose heartbeat is within window,
// excluding self, sorted for stable output.
func ActiveEditorsExcept(heartbeats map[string]time.Time, self string, now time.Time, window time.Duration) []string {
	ids := make([]string, 0, len(heartbeats))
	for id, at := range heartbeats {
		if id == self || now.Sub(at) > window {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SanitizeFieldPath turns an arbitrary form field identifier into a dot path
// that is safe to use as a JSON object key. Characters outside [A-Za-z0-9_-]
// become underscores; empty segments are dropped.
func SanitizeFieldPath(path string) string {
	segments := strings.Split(path, ".")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		var b strings.Builder
		b.Grow(len(seg))
		for _, r := range seg {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
		out = append(out, b.String())
	}
	return strings.Join(out, ".")
}

// ChangeKind describes what a graduation change notification is about.
type ChangeKind string

const (
	ChangeContent  ChangeKind = "content"
	ChangePresence ChangeKind = "presence"
	ChangeLocks    ChangeKind = "locks"
	ChangeBooklet  ChangeKind = "booklet"
)

// ChangeEvent is published whenever a graduation document is written.
type ChangeEvent struct {
	GraduationID string     `json:"graduationId"`
	Kind         ChangeKind `json:"kind"`
	At           time.Time  `json:"at"`
}
