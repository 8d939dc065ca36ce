package preview

import (
	"sync"
	"time"
)

// buildStatus tracks the latest build for /healthz.
type buildStatus struct {
	mu           sync.RWMutex
	buildID      string
	finished     time.Time
	lastError    error
	hasGoodBuild bool // true if at least one successful build exists
	builds       int
}

func (bs *buildStatus) record(buildID string, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.buildID = buildID
	bs.finished = time.Now()
	bs.lastError = err
	bs.builds++
	if err == nil {
		bs.hasGoodBuild = true
	}
}

// Health is the /healthz payload.
type Health struct {
	Status       string    `json:"status"` // ok|error|starting
	BuildID      string    `json:"build_id,omitempty"`
	Builds       int       `json:"builds"`
	LastBuild    time.Time `json:"last_build,omitempty"`
	HasGoodBuild bool      `json:"has_good_build"`
	Error        string    `json:"error,omitempty"`
}

func (bs *buildStatus) health() Health {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	h := Health{
		Status:       "ok",
		BuildID:      bs.buildID,
		Builds:       bs.builds,
		LastBuild:    bs.finished,
		HasGoodBuild: bs.hasGoodBuild,
	}
	switch {
	case bs.builds == 0:
		h.Status = "starting"
	case bs.lastError != nil:
		h.Status = "error"
		h.Error = bs.lastError.Error()
	}
	return h
}
