package dto

import "time"

// LoginRequest holds the email + PIN pair. MemberID is only needed when the
// pair matches several members (one guardian paying for several students) and
// the client is resubmitting a choice.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	PIN      string `json:"pin" validate:"required"`
	MemberID string `json:"member_id"`
}

// MemberInfo describes the logged-in member in responses.
type MemberInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MemberCandidate is one of several members sharing an email+PIN pair,
// offered for name-based disambiguation.
type MemberCandidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LoginResponse returns the issued session token, or the candidate list when
// a choice is still required.
type LoginResponse struct {
	AccessToken string            `json:"access_token,omitempty"`
	ExpiresIn   int64             `json:"expires_in,omitempty"`
	IssuedAt    time.Time         `json:"issued_at,omitempty"`
	Member      *MemberInfo       `json:"member,omitempty"`
	Candidates  []MemberCandidate `json:"candidates,omitempty"`
}
