package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

type requestStore interface {
	Snapshot(ctx context.Context) (models.Table, error)
	Header(ctx context.Context) ([]string, error)
	Append(ctx context.Context, header []string, row models.Row) error
}

// LeaveService composes and appends leave request rows. A date-range clash
// with one of the member's existing leave requests blocks the append outright.
type LeaveService struct {
	requests  requestStore
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(requests requestStore, validate *validator.Validate, logger *zap.Logger, location *time.Location) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &LeaveService{
		requests:  requests,
		validator: validate,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// Submit validates, normalizes and appends one leave request for the member.
func (s *LeaveService) Submit(ctx context.Context, member *models.SessionClaims, payload dto.LeaveRequestPayload) (*dto.SubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave request payload")
	}
	if !models.IsLeaveReason(payload.Reason) {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("reason must be one of: %s", strings.Join(models.LeaveReasons, ", ")))
	}
	if strings.TrimSpace(payload.Description) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "description must not be empty")
	}

	start, ok := parseDayFirstDate(strings.TrimSpace(payload.StartDate), s.location)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start date must be a valid DD-MM-YYYY date")
	}

	start = nextMonday(start)
	end := start.AddDate(0, 0, 7*payload.Weeks-1)

	table, err := s.requests.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if clash, from, to := s.findOverlap(table, member, start, end); clash {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("requested leave overlaps an existing leave request (%s to %s)", from, to))
	}

	header, err := s.requests.Header(ctx)
	if err != nil {
		return nil, err
	}

	sheet := models.Table{Headers: header}
	structured := sheet.HasColumns(models.LeaveColumns...)

	fromDate := start.Format(models.DateLayout)
	toDate := end.Format(models.DateLayout)
	timestamp := s.now().In(s.location).Format(models.TimestampLayout)

	row := models.Row{
		models.ColTimestamp:    timestamp,
		models.ColRequestEmail: member.Email,
		models.ColRequestID:    member.MemberID,
		models.ColRequestType:  models.RequestTypeLeave,
		models.ColStatus:       models.StatusNew,
		models.ColHandledBy:    "",
		models.ColAdminNotes:   "",
	}

	if structured {
		row[models.ColMessage] = ""
		row[models.ColStudentName] = member.MemberName
		row[models.ColFromDate] = fromDate
		row[models.ColToDate] = toDate
		row[models.ColWeeks] = strconv.Itoa(payload.Weeks)
		row[models.ColLeaveReason] = payload.Reason
		row[models.ColLeaveDescription] = strings.TrimSpace(payload.Description)
	} else {
		row[models.ColMessage] = fmt.Sprintf("Leave request | From: %s | To: %s | Weeks: %d | Reason: %s | Details: %s",
			fromDate, toDate, payload.Weeks, payload.Reason, strings.TrimSpace(payload.Description))
	}

	if err := s.requests.Append(ctx, header, row); err != nil {
		return nil, err
	}

	s.logger.Info("leave request appended",
		zap.String("member_id", member.MemberID),
		zap.String("from", fromDate),
		zap.String("to", toDate),
		zap.Bool("structured", structured))

	return &dto.SubmitResponse{
		RequestType: models.RequestTypeLeave,
		Status:      models.StatusNew,
		Timestamp:   timestamp,
		Structured:  structured,
		FromDate:    fromDate,
		ToDate:      toDate,
	}, nil
}

// findOverlap scans the member's existing leave requests for a date-range
// clash: existing_from <= new_end && existing_to >= new_start. Rows without
// parseable structured dates are skipped.
func (s *LeaveService) findOverlap(table models.Table, member *models.SessionClaims, start, end time.Time) (bool, string, string) {
	if !table.HasColumns(models.ColFromDate, models.ColToDate) {
		return false, "", ""
	}

	email := strings.ToLower(strings.TrimSpace(member.Email))
	hasIDColumn := table.HasColumn(models.ColRequestID)

	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row.Get(models.ColRequestEmail))) != email {
			continue
		}
		if hasIDColumn && strings.TrimSpace(row.Get(models.ColRequestID)) != member.MemberID {
			continue
		}
		if row.Get(models.ColRequestType) != models.RequestTypeLeave {
			continue
		}

		from, okFrom := parseDayFirstDate(strings.TrimSpace(row.Get(models.ColFromDate)), s.location)
		to, okTo := parseDayFirstDate(strings.TrimSpace(row.Get(models.ColToDate)), s.location)
		if !okFrom || !okTo {
			continue
		}

		if !from.After(end) && !to.Before(start) {
			return true, from.Format(models.DateLayout), to.Format(models.DateLayout)
		}
	}

	return false, "", ""
}
