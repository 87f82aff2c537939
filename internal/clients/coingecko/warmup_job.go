package coingecko

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const warmupTimeout = 30 * time.Second

// WarmupJob refreshes the most frequently served upstream responses so
// interactive queries usually hit a warm cache. Failures are tolerated: the
// stale-cache fallback still serves queries until the next run succeeds.
type WarmupJob struct {
	client *Client
	log    zerolog.Logger
}

// NewWarmupJob creates the cache warmup job.
func NewWarmupJob(client *Client, log zerolog.Logger) *WarmupJob {
	return &WarmupJob{
		client: client,
		log:    log.With().Str("job", "market_cache_warmup").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *WarmupJob) Name() string { return "market_cache_warmup" }

// Run refreshes the top assets list and the global snapshot. The last error
// wins; both fetches are always attempted.
func (j *WarmupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	var lastErr error

	if _, err := j.client.TopAssets(ctx, 20); err != nil {
		j.log.Warn().Err(err).Msg("Top assets warmup failed")
		lastErr = err
	}

	if _, err := j.client.GlobalSnapshot(ctx); err != nil {
		j.log.Warn().Err(err).Msg("Global snapshot warmup failed")
		lastErr = err
	}

	return lastErr
}
