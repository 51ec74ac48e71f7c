package domain

import (
	"time"

	"github.com/google/uuid"
)

// CacheClass groups related caches so class-wide maintenance (e.g. "purge all
// image caches") only ever touches names this service registered itself.
type CacheClass string

const (
	CacheClassImages CacheClass = "images"
	CacheClassPages  CacheClass = "pages"
)

// Cache describes a named cache namespace owned by this service.
type Cache struct {
	Name      string        `json:"name"`
	Class     CacheClass    `json:"class"`
	TTL       time.Duration `json:"ttl"`
	CreatedAt time.Time     `json:"created_at"`
}

// WarmJobState is the lifecycle state of a cache warm run.
type WarmJobState string

const (
	WarmJobRunning   WarmJobState = "running"
	WarmJobCompleted WarmJobState = "completed"
)

// WarmJob tracks one fire-and-forget cache warm run. Per-URL failures are
// counted, never surfaced to the caller.
type WarmJob struct {
	ID         uuid.UUID    `json:"id"`
	Cache      string       `json:"cache"`
	State      WarmJobState `json:"state"`
	Total      int          `json:"total"`
	Warmed     int          `json:"warmed"`
	Failed     int          `json:"failed"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}
