package supplyrequests

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequestInput is a hub staffer's free-text restock note.
type CreateRequestInput struct {
	HubID  int64     `json:"hub_id"`
	UserID uuid.UUID `json:"user_id"`
	Notes  string    `json:"notes" validate:"required,max=2000"`
}

// RespondInput attaches HQ's answer to an open request.
type RespondInput struct {
	RequestID   uuid.UUID `json:"request_id"`
	Response    string    `json:"response" validate:"required,max=2000"`
	RespondedBy uuid.UUID `json:"responded_by"`
}

// ListFilters narrow the request list.
type ListFilters struct {
	HubID    *int64
	OpenOnly bool
	From     *time.Time
	To       *time.Time
}
