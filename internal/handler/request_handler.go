package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
	"github.com/seido-dojo/portal-api/pkg/response"
)

type updateSubmitter interface {
	SubmitUpdate(ctx context.Context, member *models.SessionClaims, payload dto.UpdateRequestPayload) (*dto.SubmitResponse, error)
	List(ctx context.Context, member *models.SessionClaims, category string, pendingOnly bool) (*dto.RequestListResponse, error)
}

type leaveSubmitter interface {
	Submit(ctx context.Context, member *models.SessionClaims, payload dto.LeaveRequestPayload) (*dto.SubmitResponse, error)
}

type contactSubmitter interface {
	Submit(ctx context.Context, member *models.SessionClaims, payload dto.ContactUpdatePayload) (*dto.SubmitResponse, error)
}

// RequestHandler serves request submission and the request history view.
type RequestHandler struct {
	requests updateSubmitter
	leave    leaveSubmitter
	contact  contactSubmitter
}

// NewRequestHandler creates a new handler.
func NewRequestHandler(requests updateSubmitter, leave leaveSubmitter, contact contactSubmitter) *RequestHandler {
	return &RequestHandler{requests: requests, leave: leave, contact: contact}
}

// List godoc
// @Summary Request history
// @Description The member's past requests, newest first, with optional category and pending filters
// @Tags Requests
// @Produce json
// @Param category query string false "leave | contact | all"
// @Param pending query boolean false "only not-yet-resolved requests"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.requests.List(c.Request.Context(), claims, categoryFilter(c.Query("category")), pendingFilter(c.Query("pending")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// SubmitUpdate godoc
// @Summary Submit a generic update request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.UpdateRequestPayload true "Update request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/requests [post]
func (h *RequestHandler) SubmitUpdate(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload dto.UpdateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update request payload"))
		return
	}

	res, err := h.requests.SubmitUpdate(c.Request.Context(), claims, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// SubmitLeave godoc
// @Summary Submit a leave request
// @Description Leave runs in whole Monday-start weeks; a clash with an existing leave request is rejected
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.LeaveRequestPayload true "Leave request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /me/requests/leave [post]
func (h *RequestHandler) SubmitLeave(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload dto.LeaveRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave request payload"))
		return
	}

	res, err := h.leave.Submit(c.Request.Context(), claims, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// SubmitContact godoc
// @Summary Submit a contact update request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.ContactUpdatePayload true "Contact update"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/requests/contact [post]
func (h *RequestHandler) SubmitContact(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload dto.ContactUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact update payload"))
		return
	}

	res, err := h.contact.Submit(c.Request.Context(), claims, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// categoryFilter maps the query value onto a RequestType filter; empty means
// no filter.
func categoryFilter(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "leave", strings.ToLower(models.RequestTypeLeave):
		return models.RequestTypeLeave
	case "contact", strings.ToLower(models.RequestTypeContact):
		return models.RequestTypeContact
	default:
		return ""
	}
}

func pendingFilter(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
