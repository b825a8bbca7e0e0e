// Package note provides the note value type used by the demo server.
// It exists to exercise the attributes-mapping capability end to end.
package note

import "time"

// Note represents a stored note (immutable value type).
type Note struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

// JSONAttributes returns the note as a flat mapping suitable for a
// JSON:API resource object. All values are pre-formatted strings.
func (n Note) JSONAttributes() map[string]any {
	return map[string]any{
		"id":         n.ID,
		"type":       "note",
		"title":      n.Title,
		"body":       n.Body,
		"created_at": n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
