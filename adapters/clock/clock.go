// Package clock provides time sources.
package clock

import (
	"time"

	"github.com/artpar/japi/ports"
)

// System returns the real current time.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// Ensure interface compliance.
var _ ports.Clock = System{}

// Fixed returns a fixed time (for testing).
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time {
	return f.T
}

// Ensure interface compliance.
var _ ports.Clock = Fixed{}
