package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seido-dojo/portal-api/internal/dto"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
	"github.com/seido-dojo/portal-api/pkg/response"
)

type balanceService interface {
	ForMember(ctx context.Context, memberID string) (*dto.BalanceResponse, error)
}

// BalanceHandler serves the leave balance view.
type BalanceHandler struct {
	service balanceService
}

// NewBalanceHandler creates a new handler.
func NewBalanceHandler(svc balanceService) *BalanceHandler {
	return &BalanceHandler{service: svc}
}

// Balance godoc
// @Summary Current leave balance
// @Description Computed allowance/taken/balance view for the logged-in member
// @Tags Balance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/balance [get]
func (h *BalanceHandler) Balance(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.ForMember(c.Request.Context(), claims.MemberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
