package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

// Display column sets per category, in preferred order. The view keeps only
// the columns actually present in the sheet.
var (
	leaveViewColumns = []string{
		models.ColTimestamp, models.ColFromDate, models.ColToDate, models.ColWeeks,
		models.ColLeaveReason, models.ColLeaveDescription, models.ColStatus,
	}
	contactViewColumns = []string{
		models.ColTimestamp, models.ColUpdateType, models.ColUpdateName,
		models.ColUpdatePhone, models.ColUpdateEmail, models.ColAddr1,
		models.ColAddr2, models.ColSuburb, models.ColPostCode, models.ColStatus,
	}
	genericViewColumns = []string{
		models.ColTimestamp, models.ColRequestType, models.ColMessage, models.ColStatus,
	}
)

// RequestService handles the generic update request and the member's request
// history view.
type RequestService struct {
	requests  requestStore
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewRequestService constructs a RequestService.
func NewRequestService(requests requestStore, validate *validator.Validate, logger *zap.Logger, location *time.Location) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &RequestService{
		requests:  requests,
		validator: validate,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// SubmitUpdate appends a generic free-text request row.
func (s *RequestService) SubmitUpdate(ctx context.Context, member *models.SessionClaims, payload dto.UpdateRequestPayload) (*dto.SubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update request payload")
	}

	header, err := s.requests.Header(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := s.now().In(s.location).Format(models.TimestampLayout)
	row := models.Row{
		models.ColTimestamp:    timestamp,
		models.ColRequestEmail: member.Email,
		models.ColRequestID:    member.MemberID,
		models.ColRequestType:  strings.TrimSpace(payload.Category),
		models.ColMessage:      strings.TrimSpace(payload.Message),
		models.ColStatus:       models.StatusNew,
		models.ColHandledBy:    "",
		models.ColAdminNotes:   "",
	}

	if err := s.requests.Append(ctx, header, row); err != nil {
		return nil, err
	}

	s.logger.Info("update request appended",
		zap.String("member_id", member.MemberID),
		zap.String("category", payload.Category))

	return &dto.SubmitResponse{
		RequestType: strings.TrimSpace(payload.Category),
		Status:      models.StatusNew,
		Timestamp:   timestamp,
		Structured:  false,
	}, nil
}

// List returns the member's request rows, newest first, optionally filtered
// by category and by membership of the fixed pending-status set.
func (s *RequestService) List(ctx context.Context, member *models.SessionClaims, category string, pendingOnly bool) (*dto.RequestListResponse, error) {
	table, err := s.requests.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := s.filterRows(table, member, category, pendingOnly)
	s.sortByTimestampDesc(rows)

	columns := s.viewColumns(table, category)
	rendered := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out := make(map[string]string, len(columns))
		for _, col := range columns {
			out[col] = s.renderCell(col, row.Get(col))
		}
		rendered = append(rendered, out)
	}

	return &dto.RequestListResponse{Columns: columns, Requests: rendered}, nil
}

func (s *RequestService) filterRows(table models.Table, member *models.SessionClaims, category string, pendingOnly bool) []models.Row {
	email := strings.ToLower(strings.TrimSpace(member.Email))
	hasIDColumn := table.HasColumn(models.ColRequestID)

	var rows []models.Row
	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row.Get(models.ColRequestEmail))) != email {
			continue
		}
		if hasIDColumn && strings.TrimSpace(row.Get(models.ColRequestID)) != member.MemberID {
			continue
		}
		if category != "" && row.Get(models.ColRequestType) != category {
			continue
		}
		if pendingOnly && !models.IsPendingStatus(row.Get(models.ColStatus)) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// sortByTimestampDesc orders newest first; rows with unparsable timestamps
// sink to the bottom and ties keep their sheet order.
func (s *RequestService) sortByTimestampDesc(rows []models.Row) {
	type keyed struct {
		ts time.Time
		ok bool
	}
	keys := make([]keyed, len(rows))
	for i, row := range rows {
		t, ok := parseDayFirstTimestamp(strings.TrimSpace(row.Get(models.ColTimestamp)), s.location)
		keys[i] = keyed{ts: t, ok: ok}
	}

	indexes := make([]int, len(rows))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		ka, kb := keys[indexes[a]], keys[indexes[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return ka.ts.After(kb.ts)
	})

	sorted := make([]models.Row, len(rows))
	for i, idx := range indexes {
		sorted[i] = rows[idx]
	}
	copy(rows, sorted)
}

// viewColumns picks the display column set for the category, keeping only
// columns the sheet actually has and falling back to the generic set when a
// category's own columns are absent.
func (s *RequestService) viewColumns(table models.Table, category string) []string {
	var preferred []string
	switch category {
	case models.RequestTypeLeave:
		preferred = leaveViewColumns
	case models.RequestTypeContact:
		preferred = contactViewColumns
	default:
		preferred = genericViewColumns
	}

	columns := intersectColumns(preferred, table)
	if len(columns) == 0 || onlyBookkeeping(columns) {
		columns = intersectColumns(genericViewColumns, table)
	}
	if len(columns) == 0 {
		columns = table.Headers
	}
	return columns
}

func (s *RequestService) renderCell(column, value string) string {
	value = strings.TrimSpace(value)
	switch column {
	case models.ColTimestamp:
		if value == "" {
			return ""
		}
		t, ok := parseDayFirstTimestamp(value, s.location)
		if !ok {
			return ""
		}
		return t.Format(models.TimestampLayout)
	case models.ColFromDate, models.ColToDate:
		if value == "" {
			return ""
		}
		t, ok := parseDayFirstDate(value, s.location)
		if !ok {
			return ""
		}
		return t.Format(models.DateLayout)
	default:
		return value
	}
}

func intersectColumns(preferred []string, table models.Table) []string {
	var out []string
	for _, col := range preferred {
		if table.HasColumn(col) {
			out = append(out, col)
		}
	}
	return out
}

// onlyBookkeeping reports whether a column set carries nothing beyond
// timestamp and status, which is no view at all.
func onlyBookkeeping(columns []string) bool {
	for _, col := range columns {
		if col != models.ColTimestamp && col != models.ColStatus {
			return false
		}
	}
	return true
}
