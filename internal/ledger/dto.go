package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/enums"
)

// RecordTransactionInput captures the immutable data a ledger row requires.
type RecordTransactionInput struct {
	SKU      string         `json:"sku"`
	Action   enums.TxAction `json:"action"`
	Quantity int            `json:"quantity"`
	HubID    int64          `json:"hub_id"`
	UserID   uuid.UUID      `json:"user_id"`
	Comment  *string        `json:"comment,omitempty"`
}

// TransactionFilters describe the inputs supported by the transaction list.
type TransactionFilters struct {
	HubID  *int64
	SKU    string
	Action *enums.TxAction
	From   *time.Time
	To     *time.Time
	Limit  int
}

// DailyOutTotal is one day's summed OUT quantity for a hub/SKU pair.
type DailyOutTotal struct {
	Day   string `json:"day" gorm:"column:day"`
	SKU   string `json:"sku" gorm:"column:sku"`
	Total int    `json:"total" gorm:"column:total"`
}
