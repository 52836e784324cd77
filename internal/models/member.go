package models

import "strings"

// Members sheet column names. The sheet is maintained by dojo staff outside
// this system; the portal only ever reads it.
const (
	ColMemberID        = "MemberID"
	ColMemberName      = "MemberName"
	ColMemberEmail     = "Email"
	ColMemberPIN       = "PIN"
	ColMemberPINHash   = "PIN_Hash"
	ColLeaveYear       = "LeaveYear"
	ColAnnualAllowance = "AnnualAllowance"
	ColLeaveTaken      = "LeaveTaken"
	ColLeaveBalance    = "LeaveBalance"
	ColLastUpdated     = "LastUpdated"
)

// RequiredMemberColumns must all be present before any lookup runs.
var RequiredMemberColumns = []string{
	ColMemberID,
	ColMemberName,
	ColMemberEmail,
	ColLeaveYear,
	ColAnnualAllowance,
	ColLeaveTaken,
	ColLeaveBalance,
	ColLastUpdated,
}

// Member is one row of the Members sheet. The balance invariant
// (balance = allowance - taken) is computed upstream and taken on trust.
type Member struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	LeaveYear       string `json:"leave_year"`
	AnnualAllowance string `json:"annual_allowance"`
	LeaveTaken      string `json:"leave_taken"`
	LeaveBalance    string `json:"leave_balance"`
	LastUpdated     string `json:"last_updated"`
}

// MemberFromRow maps a sheet row onto a Member.
func MemberFromRow(row Row) Member {
	return Member{
		ID:              strings.TrimSpace(row.Get(ColMemberID)),
		Name:            strings.TrimSpace(row.Get(ColMemberName)),
		Email:           strings.TrimSpace(row.Get(ColMemberEmail)),
		LeaveYear:       strings.TrimSpace(row.Get(ColLeaveYear)),
		AnnualAllowance: strings.TrimSpace(row.Get(ColAnnualAllowance)),
		LeaveTaken:      strings.TrimSpace(row.Get(ColLeaveTaken)),
		LeaveBalance:    strings.TrimSpace(row.Get(ColLeaveBalance)),
		LastUpdated:     strings.TrimSpace(row.Get(ColLastUpdated)),
	}
}
