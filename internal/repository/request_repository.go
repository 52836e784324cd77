package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

const requestsCacheKey = "sheets:requests:snapshot"

// RequestRepository reads and appends the Requests sheet. Appends align the
// row to the sheet's current header by name, so staff can re-order or extend
// columns without breaking the writer.
type RequestRepository struct {
	gateway tableGateway
	cache   snapshotCache
	metrics gatewayMetrics
	sheetID string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(gateway tableGateway, cache snapshotCache, metrics gatewayMetrics, sheetID string, ttl time.Duration, logger *zap.Logger) *RequestRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestRepository{gateway: gateway, cache: cache, metrics: metrics, sheetID: sheetID, ttl: ttl, logger: logger}
}

// Snapshot returns the Requests table, no staler than the configured TTL.
func (r *RequestRepository) Snapshot(ctx context.Context) (models.Table, error) {
	var cached models.Table
	if r.cache != nil {
		start := time.Now()
		err := r.cache.Get(ctx, requestsCacheKey, &cached)
		if r.metrics != nil {
			r.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			r.logger.Warn("requests snapshot cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	table, err := r.gateway.ReadTable(ctx, r.sheetID)
	if r.metrics != nil {
		r.metrics.ObserveSheetOp("requests_read", time.Since(start))
	}
	if err != nil {
		return models.Table{}, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, requestsCacheKey, table, r.ttl); err != nil {
			r.logger.Warn("requests snapshot cache write failed", zap.Error(err))
		}
	}

	return table, nil
}

// Header returns the sheet's current header row, read fresh so a write that
// follows lines up with today's column layout.
func (r *RequestRepository) Header(ctx context.Context) ([]string, error) {
	start := time.Now()
	header, err := r.gateway.ReadHeader(ctx, r.sheetID)
	if r.metrics != nil {
		r.metrics.ObserveSheetOp("requests_header", time.Since(start))
	}
	return header, err
}

// Append writes one request row, placing each named value under its column in
// the given header order. Columns the row does not know stay blank; values
// for columns the sheet lacks are dropped (the composer folds those into the
// message beforehand).
func (r *RequestRepository) Append(ctx context.Context, header []string, row models.Row) error {
	if len(header) == 0 {
		return appErrors.Clone(appErrors.ErrSheetSchema, "requests sheet has no header row")
	}

	values := make([]string, len(header))
	for i, column := range header {
		values[i] = row[column]
	}

	start := time.Now()
	err := r.gateway.AppendRow(ctx, r.sheetID, values)
	if r.metrics != nil {
		r.metrics.ObserveSheetOp("requests_append", time.Since(start))
	}
	if err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, requestsCacheKey); err != nil {
			r.logger.Warn("requests snapshot cache invalidation failed", zap.Error(err))
		}
	}

	return nil
}
