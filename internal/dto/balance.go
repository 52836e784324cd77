package dto

// BalanceResponse is the display-ready leave balance view for one member.
// The *Display fields render whole numbers without a decimal point, matching
// how the figures appear in the sheet.
type BalanceResponse struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	LeaveYear  string `json:"leave_year"`

	AllowanceWeeks float64 `json:"allowance_weeks"`
	TakenWeeks     float64 `json:"taken_weeks"`
	BalanceWeeks   float64 `json:"balance_weeks"`

	AllowanceDisplay string `json:"allowance_display"`
	TakenDisplay     string `json:"taken_display"`
	BalanceDisplay   string `json:"balance_display"`

	UsagePct float64 `json:"usage_pct"`

	FreeWeeksUsed   float64 `json:"free_weeks_used"`
	PaidWeeksUsed   float64 `json:"paid_weeks_used"`
	FreeUsedDisplay string  `json:"free_used_display"`
	PaidUsedDisplay string  `json:"paid_used_display"`
	FreePct         float64 `json:"free_pct"`
	PaidPct         float64 `json:"paid_pct"`

	LastUpdated string `json:"last_updated"`
}
