// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
)

const defaultRecoveryInterval = time.Minute

// RecoveryJob calls Recover on a ticker while the client is online. It picks
// up intents persisted by other processes sharing the retry store, and
// intents whose resubmission was skipped while offline.
type RecoveryJob struct {
	recoverer    Recoverer
	connectivity Connectivity
	interval     time.Duration
	logger       *logger.Logger
}

// NewRecoveryJob creates a job running every interval. A zero or negative
// interval means one minute.
func NewRecoveryJob(recoverer Recoverer, connectivity Connectivity, interval time.Duration, logger *logger.Logger) *RecoveryJob {
	if interval <= 0 {
		interval = defaultRecoveryInterval
	}
	return &RecoveryJob{
		recoverer:    recoverer,
		connectivity: connectivity,
		interval:     interval,
		logger:       logger,
	}
}

// Run implements [Worker]. Recovery errors are logged and do not stop the job.
// Recover receives a context carrying the job's logger.
func (j *RecoveryJob) Run(ctx context.Context) error {
	ctx = j.logger.With().Str("job", "recovery").Logger().WithContext(ctx)

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if !j.connectivity.Online() {
				continue
			}
			if err := j.recoverer.Recover(ctx); err != nil && ctx.Err() == nil {
				j.logger.Err(err).Str("func", "RecoveryJob.Run").Msg("periodic recovery failed")
			}
		}
	}
}
