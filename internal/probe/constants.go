package probe

import "time"

// Defaults for the probe CLI.
const (
	DefaultBaseURL  = "http://localhost:8050"
	DefaultRequests = 500
	DefaultTimeout  = 10 * time.Second
	DefaultWorkers  = 8
)

// Generation tuning.
const (
	maxPicksPerFacet = 3
	emptyCourseEvery = 10
	emptyStateEvery  = 10
	unknownValueOdds = 20
	queryFormEvery   = 5
)

const (
	maxErrorBody = 512
	unknownValue = "__probe_unknown__"
)
