package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

const membersCacheKey = "sheets:members:snapshot"

type tableGateway interface {
	ReadTable(ctx context.Context, spreadsheetID string) (models.Table, error)
	ReadHeader(ctx context.Context, spreadsheetID string) ([]string, error)
	AppendRow(ctx context.Context, spreadsheetID string, values []string) error
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type gatewayMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveSheetOp(op string, duration time.Duration)
}

// MemberRepository reads the Members sheet through the gateway with a
// short-lived snapshot cache in front. The sheet is read-only to the portal.
type MemberRepository struct {
	gateway tableGateway
	cache   snapshotCache
	metrics gatewayMetrics
	sheetID string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewMemberRepository constructs a MemberRepository.
func NewMemberRepository(gateway tableGateway, cache snapshotCache, metrics gatewayMetrics, sheetID string, ttl time.Duration, logger *zap.Logger) *MemberRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberRepository{gateway: gateway, cache: cache, metrics: metrics, sheetID: sheetID, ttl: ttl, logger: logger}
}

// Snapshot returns the Members table, no staler than the configured TTL.
// Cache trouble is logged and bypassed, never surfaced to the member.
func (r *MemberRepository) Snapshot(ctx context.Context) (models.Table, error) {
	var cached models.Table
	if r.cache != nil {
		start := time.Now()
		err := r.cache.Get(ctx, membersCacheKey, &cached)
		if r.metrics != nil {
			r.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			r.logger.Warn("members snapshot cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	table, err := r.gateway.ReadTable(ctx, r.sheetID)
	if r.metrics != nil {
		r.metrics.ObserveSheetOp("members_read", time.Since(start))
	}
	if err != nil {
		return models.Table{}, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, membersCacheKey, table, r.ttl); err != nil {
			r.logger.Warn("members snapshot cache write failed", zap.Error(err))
		}
	}

	return table, nil
}
