package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

// BalanceService turns a member row's numeric columns into a display-ready
// leave balance view. The computation is pure; only the member fetch touches
// the gateway.
type BalanceService struct {
	members   memberSource
	freeWeeks float64
	logger    *zap.Logger
}

// NewBalanceService constructs a BalanceService. freeWeeks is the policy
// constant for no-charge leave weeks per year.
func NewBalanceService(members memberSource, freeWeeks float64, logger *zap.Logger) *BalanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceService{members: members, freeWeeks: freeWeeks, logger: logger}
}

// ForMember fetches the member's current row and computes the balance view.
func (s *BalanceService) ForMember(ctx context.Context, memberID string) (*dto.BalanceResponse, error) {
	table, err := s.members.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if missing := table.MissingColumns(models.RequiredMemberColumns...); len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrSheetSchema,
			fmt.Sprintf("members sheet is missing columns: %s", strings.Join(missing, ", ")))
	}

	for _, row := range table.Rows {
		if strings.TrimSpace(row.Get(models.ColMemberID)) == memberID {
			view := s.View(models.MemberFromRow(row))
			return &view, nil
		}
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "member record no longer exists")
}

// View computes the balance presentation for one resolved member row.
func (s *BalanceService) View(member models.Member) dto.BalanceResponse {
	allowance := parseWeeks(member.AnnualAllowance)
	taken := parseWeeks(member.LeaveTaken)
	balance := parseWeeks(member.LeaveBalance)

	free := math.Min(taken, s.freeWeeks)
	paid := math.Max(0, taken-s.freeWeeks)

	return dto.BalanceResponse{
		MemberID:   member.ID,
		MemberName: member.Name,
		LeaveYear:  member.LeaveYear,

		AllowanceWeeks: allowance,
		TakenWeeks:     taken,
		BalanceWeeks:   balance,

		AllowanceDisplay: formatWeeks(allowance),
		TakenDisplay:     formatWeeks(taken),
		BalanceDisplay:   formatWeeks(balance),

		UsagePct: pct(taken, allowance),

		FreeWeeksUsed:   free,
		PaidWeeksUsed:   paid,
		FreeUsedDisplay: formatWeeks(free),
		PaidUsedDisplay: formatWeeks(paid),
		FreePct:         pct(free, allowance),
		PaidPct:         pct(paid, allowance),

		LastUpdated: member.LastUpdated,
	}
}

// pct returns part/whole as a percentage clamped to [0,100], 0 when the
// whole is not positive.
func pct(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	p := part / whole * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// parseWeeks reads a numeric sheet cell, defaulting anything unparseable
// to 0.
func parseWeeks(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// formatWeeks renders whole numbers without a decimal point and everything
// else with its natural decimal form.
func formatWeeks(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
