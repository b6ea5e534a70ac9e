// Package probe drives a running dashboard over HTTP with random selections
// and checks every response against the pipeline invariants.
package probe

import (
	"time"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of updates to send
	Workers  int           // Concurrent requests in flight
	Seed     uint64        // Seed for selection generation, 0 picks one
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every violation as it is found
}

// Response is the body of /api/update.
type Response struct {
	Selection model.Selection `json:"selection"`
	present.Update
}

// Summary holds run statistics.
type Summary struct {
	RunID      string
	Seed       uint64
	Requests   int
	Succeeded  int
	Failed     int
	Empty      int
	Violations []Violation
	StartTime  time.Time
	Duration   time.Duration
}

// OK reports whether every request succeeded and no invariant broke.
func (s *Summary) OK() bool {
	return s.Failed == 0 && len(s.Violations) == 0
}
