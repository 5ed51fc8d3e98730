package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RejectedRows dead-letters the rows a run could not use so they can be inspected
// after the report is produced. Entries expire after TTL.
type RejectedRows struct {
	client redis.Cmdable
	logger *zap.Logger
	ttl    time.Duration
}

func NewRejectedRows(client redis.Cmdable, logger *zap.Logger, ttl time.Duration) *RejectedRows {
	return &RejectedRows{client: client, logger: logger, ttl: ttl}
}

// RejectedKey is "recon:{run_id}:rejected:{side}:{index}".
func RejectedKey(runID string, row models.RejectedRow) string {
	return fmt.Sprintf("recon:%s:rejected:%s:%d", runID, row.Side, row.Index)
}

// Send stores every row in a single pipeline.
func (r *RejectedRows) Send(ctx context.Context, runID string, rows []models.RejectedRow) error {
	if len(rows) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	queued := 0
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			r.logger.Error("failed to marshal rejected row", zap.Int("index", row.Index), zap.Error(err))
			continue
		}
		pipe.Set(ctx, RejectedKey(runID, row), data, r.ttl)
		queued++
	}
	if queued == 0 {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.E(errors.IO, "cannot store rejected rows", err)
	}
	r.logger.Info("rejected rows dead-lettered", zap.String("run_id", runID), zap.Int("count", queued))
	return nil
}
