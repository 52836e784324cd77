package dto

// UpdateRequestPayload submits a generic free-text request.
type UpdateRequestPayload struct {
	Category string `json:"category" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// LeaveRequestPayload submits a leave (suspension) request. StartDate is
// day-first (DD-MM-YYYY); leave always runs in whole Monday-start weeks.
type LeaveRequestPayload struct {
	StartDate   string `json:"start_date" validate:"required"`
	Weeks       int    `json:"weeks" validate:"required,min=1"`
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ContactUpdatePayload submits a contact-detail change request. Which fields
// are required depends on UpdateType.
type ContactUpdatePayload struct {
	UpdateType string `json:"update_type" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Addr1      string `json:"addr1"`
	Addr2      string `json:"addr2"`
	Suburb     string `json:"suburb"`
	PostCode   string `json:"postcode"`
}

// SubmitResponse acknowledges an appended request row.
type SubmitResponse struct {
	RequestType string `json:"request_type"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	// Structured is true when the sheet carried the discrete columns for
	// this request type, false when the row fell back to a message string.
	Structured bool `json:"structured"`
	// FromDate/ToDate echo the normalized leave window on leave requests.
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

// RequestListResponse is the member's request history view. Columns is the
// display column set chosen for the category, restricted to columns actually
// present in the sheet; each row maps column name to rendered value.
type RequestListResponse struct {
	Columns  []string            `json:"columns"`
	Requests []map[string]string `json:"requests"`
}
