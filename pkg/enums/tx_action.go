package enums

import "fmt"

// TxAction maps to the action column on inventory_transactions.
type TxAction string

const (
	TxActionIn  TxAction = "IN"
	TxActionOut TxAction = "OUT"
)

var validTxActions = []TxAction{
	TxActionIn,
	TxActionOut,
}

// String implements fmt.Stringer.
func (a TxAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known TxAction.
func (a TxAction) IsValid() bool {
	for _, candidate := range validTxActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseTxAction converts raw input into a TxAction.
func ParseTxAction(value string) (TxAction, error) {
	for _, candidate := range validTxActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction action %q", value)
}
