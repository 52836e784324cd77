package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

type mockRequestStore struct {
	table       models.Table
	snapshotErr error
	header      []string
	headerErr   error
	appendErr   error

	appendedHeader []string
	appendedRows   []models.Row
}

func (m *mockRequestStore) Snapshot(ctx context.Context) (models.Table, error) {
	if m.snapshotErr != nil {
		return models.Table{}, m.snapshotErr
	}
	return m.table, nil
}

func (m *mockRequestStore) Header(ctx context.Context) ([]string, error) {
	if m.headerErr != nil {
		return nil, m.headerErr
	}
	if m.header != nil {
		return m.header, nil
	}
	return m.table.Headers, nil
}

func (m *mockRequestStore) Append(ctx context.Context, header []string, row models.Row) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appendedHeader = header
	m.appendedRows = append(m.appendedRows, row)
	return nil
}

var baseRequestHeaders = []string{
	models.ColTimestamp, models.ColRequestEmail, models.ColRequestID,
	models.ColRequestType, models.ColMessage, models.ColStatus,
	models.ColHandledBy, models.ColAdminNotes,
}

func structuredLeaveHeaders() []string {
	return append(append([]string{}, baseRequestHeaders...), models.LeaveColumns...)
}

func testMember() *models.SessionClaims {
	return &models.SessionClaims{MemberID: "M001", MemberName: "Aiko Tanaka", Email: "aiko@example.com"}
}

func newTestLeaveService(store *mockRequestStore) *LeaveService {
	svc := NewLeaveService(store, validator.New(), zap.NewNop(), time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestNextMonday(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2024, 1, 1, 0, 0, 0, 0, loc)},
		{"tuesday rolls forward", time.Date(2024, 1, 2, 0, 0, 0, 0, loc), time.Date(2024, 1, 8, 0, 0, 0, 0, loc)},
		{"saturday rolls forward", time.Date(2024, 1, 6, 0, 0, 0, 0, loc), time.Date(2024, 1, 8, 0, 0, 0, 0, loc)},
		{"sunday rolls to next day", time.Date(2024, 1, 7, 0, 0, 0, 0, loc), time.Date(2024, 1, 8, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextMonday(tc.in))
		})
	}
}

func TestLeaveServiceSubmitStructured(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredLeaveHeaders()}}
	svc := newTestLeaveService(store)

	res, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "03-01-2024", // a Wednesday
		Weeks:       2,
		Reason:      "Personal",
		Description: "Family trip",
	})
	require.NoError(t, err)

	assert.True(t, res.Structured)
	assert.Equal(t, models.RequestTypeLeave, res.RequestType)
	assert.Equal(t, models.StatusNew, res.Status)
	assert.Equal(t, "08-01-2024", res.FromDate)
	assert.Equal(t, "21-01-2024", res.ToDate)
	assert.Equal(t, "02-01-2024 09:30:00", res.Timestamp)

	require.Len(t, store.appendedRows, 1)
	row := store.appendedRows[0]
	assert.Equal(t, "aiko@example.com", row.Get(models.ColRequestEmail))
	assert.Equal(t, "M001", row.Get(models.ColRequestID))
	assert.Equal(t, models.RequestTypeLeave, row.Get(models.ColRequestType))
	assert.Equal(t, models.StatusNew, row.Get(models.ColStatus))
	assert.Equal(t, "Aiko Tanaka", row.Get(models.ColStudentName))
	assert.Equal(t, "08-01-2024", row.Get(models.ColFromDate))
	assert.Equal(t, "21-01-2024", row.Get(models.ColToDate))
	assert.Equal(t, "2", row.Get(models.ColWeeks))
	assert.Equal(t, "Personal", row.Get(models.ColLeaveReason))
	assert.Equal(t, "Family trip", row.Get(models.ColLeaveDescription))
	assert.Empty(t, row.Get(models.ColMessage))
}

func TestLeaveServiceSubmitMondayStartStays(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredLeaveHeaders()}}
	svc := newTestLeaveService(store)

	res, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "01-01-2024",
		Weeks:       1,
		Reason:      "Personal",
		Description: "One week off",
	})
	require.NoError(t, err)
	assert.Equal(t, "01-01-2024", res.FromDate)
	assert.Equal(t, "07-01-2024", res.ToDate)
}

func TestLeaveServiceSubmitFallbackMessage(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: baseRequestHeaders}}
	svc := newTestLeaveService(store)

	res, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "03-01-2024",
		Weeks:       2,
		Reason:      "Injury/Serious Illness",
		Description: "Knee surgery recovery",
	})
	require.NoError(t, err)
	assert.False(t, res.Structured)

	require.Len(t, store.appendedRows, 1)
	msg := store.appendedRows[0].Get(models.ColMessage)
	assert.Equal(t, "Leave request | From: 08-01-2024 | To: 21-01-2024 | Weeks: 2 | Reason: Injury/Serious Illness | Details: Knee surgery recovery", msg)
}

func TestLeaveServiceSubmitOverlapBlocked(t *testing.T) {
	store := &mockRequestStore{table: models.Table{
		Headers: structuredLeaveHeaders(),
		Rows: []models.Row{
			{
				models.ColRequestEmail: "aiko@example.com",
				models.ColRequestID:    "M001",
				models.ColRequestType:  models.RequestTypeLeave,
				models.ColFromDate:     "15-01-2024",
				models.ColToDate:       "28-01-2024",
			},
		},
	}}
	svc := newTestLeaveService(store)

	_, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "22-01-2024",
		Weeks:       1,
		Reason:      "Personal",
		Description: "Clash",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "15-01-2024")
	assert.Empty(t, store.appendedRows)
}

func TestLeaveServiceSubmitAdjacentRangesAllowed(t *testing.T) {
	store := &mockRequestStore{table: models.Table{
		Headers: structuredLeaveHeaders(),
		Rows: []models.Row{
			{
				models.ColRequestEmail: "aiko@example.com",
				models.ColRequestID:    "M001",
				models.ColRequestType:  models.RequestTypeLeave,
				models.ColFromDate:     "01-01-2024",
				models.ColToDate:       "07-01-2024",
			},
		},
	}}
	svc := newTestLeaveService(store)

	// New leave starts the day after the existing one ends.
	res, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "08-01-2024",
		Weeks:       1,
		Reason:      "Personal",
		Description: "Back to back",
	})
	require.NoError(t, err)
	assert.Equal(t, "08-01-2024", res.FromDate)
}

func TestLeaveServiceSubmitOverlapIgnoresOtherMembers(t *testing.T) {
	store := &mockRequestStore{table: models.Table{
		Headers: structuredLeaveHeaders(),
		Rows: []models.Row{
			{
				models.ColRequestEmail: "someone-else@example.com",
				models.ColRequestID:    "M999",
				models.ColRequestType:  models.RequestTypeLeave,
				models.ColFromDate:     "08-01-2024",
				models.ColToDate:       "14-01-2024",
			},
			{
				// Same guardian email, different member row.
				models.ColRequestEmail: "aiko@example.com",
				models.ColRequestID:    "M777",
				models.ColRequestType:  models.RequestTypeLeave,
				models.ColFromDate:     "08-01-2024",
				models.ColToDate:       "14-01-2024",
			},
			{
				// Same member, but not a leave request.
				models.ColRequestEmail: "aiko@example.com",
				models.ColRequestID:    "M001",
				models.ColRequestType:  models.RequestTypeContact,
				models.ColFromDate:     "08-01-2024",
				models.ColToDate:       "14-01-2024",
			},
		},
	}}
	svc := newTestLeaveService(store)

	_, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "08-01-2024",
		Weeks:       1,
		Reason:      "Personal",
		Description: "Should pass",
	})
	require.NoError(t, err)
}

func TestLeaveServiceSubmitNoStructuredColumnsSkipsOverlap(t *testing.T) {
	store := &mockRequestStore{table: models.Table{
		Headers: baseRequestHeaders,
		Rows: []models.Row{
			{
				models.ColRequestEmail: "aiko@example.com",
				models.ColRequestType:  models.RequestTypeLeave,
				models.ColMessage:      "Leave request | From: 08-01-2024 | To: 14-01-2024 | Weeks: 1 | Reason: Personal | Details: old",
			},
		},
	}}
	svc := newTestLeaveService(store)

	// Without FromDate/ToDate columns there is nothing to check against.
	_, err := svc.Submit(context.Background(), testMember(), dto.LeaveRequestPayload{
		StartDate:   "08-01-2024",
		Weeks:       1,
		Reason:      "Personal",
		Description: "New",
	})
	require.NoError(t, err)
}

func TestLeaveServiceSubmitValidation(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredLeaveHeaders()}}
	svc := newTestLeaveService(store)

	cases := []struct {
		name    string
		payload dto.LeaveRequestPayload
	}{
		{"missing start date", dto.LeaveRequestPayload{Weeks: 1, Reason: "Personal", Description: "x"}},
		{"zero weeks", dto.LeaveRequestPayload{StartDate: "08-01-2024", Reason: "Personal", Description: "x"}},
		{"unknown reason", dto.LeaveRequestPayload{StartDate: "08-01-2024", Weeks: 1, Reason: "Holiday", Description: "x"}},
		{"blank description", dto.LeaveRequestPayload{StartDate: "08-01-2024", Weeks: 1, Reason: "Personal", Description: "   "}},
		{"bad date", dto.LeaveRequestPayload{StartDate: "2024-01-08", Weeks: 1, Reason: "Personal", Description: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), testMember(), tc.payload)
			var appErr *appErrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		})
	}
	assert.Empty(t, store.appendedRows)
}

func TestParseDayFirstDateVariants(t *testing.T) {
	loc := time.UTC
	for _, raw := range []string{"08-01-2024", "8-1-2024", "08/01/2024", "8/1/2024"} {
		got, ok := parseDayFirstDate(raw, loc)
		require.True(t, ok, raw)
		assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, loc), got)
	}

	_, ok := parseDayFirstDate("2024-01-08", loc)
	assert.False(t, ok)
}
