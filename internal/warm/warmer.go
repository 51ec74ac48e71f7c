// Package warm pre-fetches asset URLs into a cache. Warm runs are
// fire-and-forget: per-URL failures are logged and counted on the job, never
// returned to the caller.
package warm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/homevista/assetopt/internal/config"
	"github.com/homevista/assetopt/internal/domain"
	"github.com/homevista/assetopt/internal/flow"
)

const progressLogInterval = 2 * time.Second

// cacheWriter abstracts the cache write operation (for testability).
// *redis.Store satisfies this interface.
type cacheWriter interface {
	Set(ctx context.Context, cache, key string, val []byte, ttl time.Duration) error
}

// Warmer runs bounded-concurrency cache warm jobs against a cache store.
type Warmer struct {
	baseCtx  context.Context
	store    cacheWriter
	client   *http.Client
	cfg      config.WarmerConfig
	progress *flow.Throttler

	mu   sync.RWMutex
	jobs map[uuid.UUID]*domain.WarmJob
}

// New creates a Warmer. baseCtx bounds all warm runs; cancelling it stops
// in-flight jobs early.
func New(baseCtx context.Context, store cacheWriter, cfg config.WarmerConfig) *Warmer {
	return &Warmer{
		baseCtx:  baseCtx,
		store:    store,
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		cfg:      cfg,
		progress: flow.NewThrottler(progressLogInterval),
		jobs:     make(map[uuid.UUID]*domain.WarmJob),
	}
}

// Start launches a warm run for the given cache and returns immediately with
// the tracking job. The run itself is detached from the caller's context.
func (w *Warmer) Start(c domain.Cache, urls []string) domain.WarmJob {
	job := &domain.WarmJob{
		ID:        uuid.New(),
		Cache:     c.Name,
		State:     domain.WarmJobRunning,
		Total:     len(urls),
		StartedAt: time.Now(),
	}

	w.mu.Lock()
	w.jobs[job.ID] = job
	w.mu.Unlock()

	go w.run(job.ID, c, urls)

	return *job
}

// Job returns a snapshot of the job with the given ID.
func (w *Warmer) Job(id uuid.UUID) (domain.WarmJob, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	job, ok := w.jobs[id]
	if !ok {
		return domain.WarmJob{}, false
	}
	return *job, true
}

func (w *Warmer) run(id uuid.UUID, c domain.Cache, urls []string) {
	sem := make(chan struct{}, w.cfg.Concurrency)
	var wg sync.WaitGroup

	for _, u := range urls {
		if w.baseCtx.Err() != nil {
			break
		}
		if u == "" {
			w.recordResult(id, false)
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := w.warmOne(c, u); err != nil {
				log.Warn().Err(err).Str("cache", c.Name).Str("url", u).Msg("cache warm fetch failed")
				w.recordResult(id, false)
				return
			}
			w.recordResult(id, true)
		}(u)
	}

	wg.Wait()

	w.mu.Lock()
	job := w.jobs[id]
	now := time.Now()
	job.State = domain.WarmJobCompleted
	job.FinishedAt = &now
	warmed, failed := job.Warmed, job.Failed
	w.mu.Unlock()

	log.Info().
		Stringer("job", id).
		Str("cache", c.Name).
		Int("warmed", warmed).
		Int("failed", failed).
		Msg("cache warm completed")
}

func (w *Warmer) recordResult(id uuid.UUID, ok bool) {
	w.mu.Lock()
	job := w.jobs[id]
	if ok {
		job.Warmed++
	} else {
		job.Failed++
	}
	warmed, total := job.Warmed+job.Failed, job.Total
	w.mu.Unlock()

	// Progress logs are throttled so large warm runs don't flood the sink.
	w.progress.Do(func() {
		log.Debug().Stringer("job", id).Int("done", warmed).Int("total", total).Msg("cache warm progress")
	})
}

func (w *Warmer) warmOne(c domain.Cache, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("warm: not an absolute url: %q", rawURL)
	}

	ctx, cancel := context.WithTimeout(w.baseCtx, w.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("warm: build request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("warm: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("warm: fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, w.cfg.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("warm: read body: %w", err)
	}

	if err := w.store.Set(ctx, c.Name, URLKey(rawURL), body, c.TTL); err != nil {
		return fmt.Errorf("warm: store: %w", err)
	}
	return nil
}

// URLKey returns the cache key for a warmed URL.
func URLKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
