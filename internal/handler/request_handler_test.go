package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/middleware"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

type requestServiceMock struct {
	submitResp   *dto.SubmitResponse
	submitErr    error
	listResp     *dto.RequestListResponse
	listErr      error
	lastCategory string
	lastPending  bool
	lastUpdate   dto.UpdateRequestPayload
	lastLeave    dto.LeaveRequestPayload
}

func (m *requestServiceMock) SubmitUpdate(ctx context.Context, member *models.SessionClaims, payload dto.UpdateRequestPayload) (*dto.SubmitResponse, error) {
	m.lastUpdate = payload
	return m.submitResp, m.submitErr
}

func (m *requestServiceMock) List(ctx context.Context, member *models.SessionClaims, category string, pendingOnly bool) (*dto.RequestListResponse, error) {
	m.lastCategory = category
	m.lastPending = pendingOnly
	return m.listResp, m.listErr
}

func (m *requestServiceMock) Submit(ctx context.Context, member *models.SessionClaims, payload dto.LeaveRequestPayload) (*dto.SubmitResponse, error) {
	m.lastLeave = payload
	return m.submitResp, m.submitErr
}

type contactServiceMock struct {
	resp *dto.SubmitResponse
	err  error
	last dto.ContactUpdatePayload
}

func (m *contactServiceMock) Submit(ctx context.Context, member *models.SessionClaims, payload dto.ContactUpdatePayload) (*dto.SubmitResponse, error) {
	m.last = payload
	return m.resp, m.err
}

func sessionContext(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextMemberKey, &models.SessionClaims{MemberID: "M001", MemberName: "Aiko Tanaka", Email: "aiko@example.com"})
	return c
}

func TestRequestHandlerList(t *testing.T) {
	mockSvc := &requestServiceMock{listResp: &dto.RequestListResponse{
		Columns:  []string{models.ColTimestamp, models.ColStatus},
		Requests: []map[string]string{{models.ColTimestamp: "01-01-2024 10:00:00", models.ColStatus: "New"}},
	}}
	handler := NewRequestHandler(mockSvc, mockSvc, &contactServiceMock{})

	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodGet, "/me/requests?category=leave&pending=true", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RequestTypeLeave, mockSvc.lastCategory)
	assert.True(t, mockSvc.lastPending)
	assert.Contains(t, w.Body.String(), "01-01-2024 10:00:00")
}

func TestRequestHandlerListNoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&requestServiceMock{}, &requestServiceMock{}, &contactServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/me/requests", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestHandlerSubmitUpdate(t *testing.T) {
	mockSvc := &requestServiceMock{submitResp: &dto.SubmitResponse{RequestType: "General", Status: models.StatusNew}}
	handler := NewRequestHandler(mockSvc, mockSvc, &contactServiceMock{})

	payload, _ := json.Marshal(dto.UpdateRequestPayload{Category: "General", Message: "Hello"})
	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/me/requests", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SubmitUpdate(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "General", mockSvc.lastUpdate.Category)
}

func TestRequestHandlerSubmitUpdateInvalidBody(t *testing.T) {
	handler := NewRequestHandler(&requestServiceMock{}, &requestServiceMock{}, &contactServiceMock{})

	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/me/requests", bytes.NewBufferString(`{"category":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SubmitUpdate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerSubmitLeave(t *testing.T) {
	mockSvc := &requestServiceMock{submitResp: &dto.SubmitResponse{
		RequestType: models.RequestTypeLeave,
		Status:      models.StatusNew,
		FromDate:    "08-01-2024",
		ToDate:      "14-01-2024",
	}}
	handler := NewRequestHandler(mockSvc, mockSvc, &contactServiceMock{})

	payload, _ := json.Marshal(dto.LeaveRequestPayload{StartDate: "03-01-2024", Weeks: 1, Reason: "Personal", Description: "Trip"})
	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/me/requests/leave", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SubmitLeave(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "03-01-2024", mockSvc.lastLeave.StartDate)
	assert.Contains(t, w.Body.String(), "08-01-2024")
}

func TestRequestHandlerSubmitLeaveConflict(t *testing.T) {
	mockSvc := &requestServiceMock{submitErr: appErrors.Clone(appErrors.ErrConflict, "requested leave overlaps an existing leave request (08-01-2024 to 14-01-2024)")}
	handler := NewRequestHandler(mockSvc, mockSvc, &contactServiceMock{})

	payload, _ := json.Marshal(dto.LeaveRequestPayload{StartDate: "08-01-2024", Weeks: 1, Reason: "Personal", Description: "Trip"})
	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/me/requests/leave", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SubmitLeave(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "overlaps")
}

func TestRequestHandlerSubmitContact(t *testing.T) {
	contactSvc := &contactServiceMock{resp: &dto.SubmitResponse{RequestType: models.RequestTypeContact, Status: models.StatusNew}}
	handler := NewRequestHandler(&requestServiceMock{}, &requestServiceMock{}, contactSvc)

	payload, _ := json.Marshal(dto.ContactUpdatePayload{UpdateType: models.UpdateTypePhone, Name: "Aiko Tanaka", Phone: "0400123456"})
	w := httptest.NewRecorder()
	c := sessionContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/me/requests/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SubmitContact(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0400123456", contactSvc.last.Phone)
}

func TestCategoryFilter(t *testing.T) {
	assert.Equal(t, models.RequestTypeLeave, categoryFilter("leave"))
	assert.Equal(t, models.RequestTypeLeave, categoryFilter(" Leave Request "))
	assert.Equal(t, models.RequestTypeContact, categoryFilter("contact"))
	assert.Equal(t, models.RequestTypeContact, categoryFilter("Contact update"))
	assert.Empty(t, categoryFilter("all"))
	assert.Empty(t, categoryFilter(""))
	assert.Empty(t, categoryFilter("unknown"))
}

func TestPendingFilter(t *testing.T) {
	assert.True(t, pendingFilter("true"))
	assert.True(t, pendingFilter("1"))
	assert.False(t, pendingFilter("false"))
	assert.False(t, pendingFilter(""))
	assert.False(t, pendingFilter("yes"))
}
