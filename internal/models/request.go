package models

import "strings"

// Requests sheet column names. The base column set always exists; the
// structured leave/contact extensions may or may not be present, and callers
// must adapt at write time.
const (
	ColTimestamp    = "Timestamp"
	ColRequestEmail = "MemberEmail"
	ColRequestID    = "MemberID"
	ColRequestType  = "RequestType"
	ColMessage      = "Message"
	ColStatus       = "Status"
	ColHandledBy    = "HandledBy"
	ColAdminNotes   = "AdminNotes"

	ColStudentName      = "StudentName"
	ColFromDate         = "FromDate"
	ColToDate           = "ToDate"
	ColWeeks            = "Weeks"
	ColLeaveReason      = "LeaveReason"
	ColLeaveDescription = "LeaveDescription"

	ColUpdateType  = "UpdateType"
	ColUpdateName  = "UpdateName"
	ColUpdatePhone = "UpdatePhone"
	ColUpdateEmail = "UpdateEmail"
	ColAddr1       = "Addr1"
	ColAddr2       = "Addr2"
	ColSuburb      = "Suburb"
	ColPostCode    = "PostCode"
)

// Request type labels written to the RequestType column.
const (
	RequestTypeLeave   = "Leave request"
	RequestTypeContact = "Contact update"
)

// StatusNew is the status every freshly appended request carries.
const StatusNew = "New"

// Timestamp and date renderings used throughout the Requests sheet,
// day-first per the dojo's convention.
const (
	TimestampLayout = "02-01-2006 15:04:05"
	DateLayout      = "02-01-2006"
)

// LeaveColumns is the structured extension for leave requests.
var LeaveColumns = []string{
	ColStudentName,
	ColFromDate,
	ColToDate,
	ColWeeks,
	ColLeaveReason,
	ColLeaveDescription,
}

// ContactColumns is the structured extension for contact updates.
var ContactColumns = []string{
	ColUpdateType,
	ColUpdateName,
	ColUpdatePhone,
	ColUpdateEmail,
	ColAddr1,
	ColAddr2,
	ColSuburb,
	ColPostCode,
}

// Contact update kinds.
const (
	UpdateTypePhone   = "Phone number"
	UpdateTypeAddress = "Address"
	UpdateTypeEmail   = "Email"
)

// LeaveReasons is the fixed reason enum for leave requests.
var LeaveReasons = []string{"Personal", "Injury/Serious Illness"}

// pendingStatuses is the fixed set of not-yet-resolved status values,
// matched case-insensitively.
var pendingStatuses = map[string]struct{}{
	"new":         {},
	"pending":     {},
	"in review":   {},
	"in-progress": {},
	"submitted":   {},
}

// IsPendingStatus reports whether a raw status value counts as pending.
func IsPendingStatus(status string) bool {
	_, ok := pendingStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// IsLeaveReason reports whether reason is one of the allowed values.
func IsLeaveReason(reason string) bool {
	for _, r := range LeaveReasons {
		if r == reason {
			return true
		}
	}
	return false
}
