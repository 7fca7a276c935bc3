package models

import (
	"math"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CashCard represents a stored-value card owned by a single user
type CashCard struct {
	ID     int64           `json:"id" db:"id"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Owner  string          `json:"owner" db:"owner"`
}

// CashCardRequest is the body accepted on create and update. Amount must fit
// NUMERIC(19,2), so it stays below 10^17.
// ID and Owner are decoded so clients sending a full record are not rejected,
// but they are never read.
type CashCardRequest struct {
	ID     *int64           `json:"id,omitempty"`
	Amount *decimal.Decimal `json:"amount" validate:"required,gte=0,lt=100000000000000000"`
	Owner  string           `json:"owner,omitempty"`
}

// ForOwner builds a new, not yet persisted card for owner.
func ForOwner(owner string, amount decimal.Decimal) CashCard {
	return CashCard{
		Amount: amount.Round(2),
		Owner:  owner,
	}
}

// ApplyUpdate builds the replacement record for an update. The id and owner
// come from the path and the authenticated caller; only the amount comes from
// the client.
func ApplyUpdate(existingID int64, existingOwner string, incomingAmount decimal.Decimal) CashCard {
	return CashCard{
		ID:     existingID,
		Amount: incomingAmount.Round(2),
		Owner:  existingOwner,
	}
}

// Sortable columns for list requests
const (
	SortByID     = "id"
	SortByAmount = "amount"
	SortByOwner  = "owner"
)

// SortOrder is one field/direction pair of a list request
type SortOrder struct {
	Field      string
	Descending bool
}

// PageRequest is a zero-based page of a sorted listing
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the number of records skipped before the page starts. It
// saturates at math.MaxInt rather than wrapping negative.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}
