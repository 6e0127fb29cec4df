package domain

import (
	"fmt"
	"time"
)

// ActionType classifies a price change recorded in the ledger.
type ActionType string

const (
	ActionEntry     ActionType = "Entry"
	ActionIncreased ActionType = "Increased"
	ActionReduced   ActionType = "Reduced"
	ActionExit      ActionType = "Exit"
)

// ParseActionType converts a stored action name back to ActionType.
func ParseActionType(s string) (ActionType, error) {
	switch a := ActionType(s); a {
	case ActionEntry, ActionIncreased, ActionReduced, ActionExit:
		return a, nil
	}
	return "", fmt.Errorf("unknown price action %q", s)
}

// DeriveAction classifies an update from oldPrice to newPrice.
// A zero new price is an Exit. Equal non-zero prices count as Reduced.
func DeriveAction(oldPrice, newPrice Money) ActionType {
	switch {
	case newPrice.IsZero():
		return ActionExit
	case newPrice.GreaterThan(oldPrice):
		return ActionIncreased
	default:
		return ActionReduced
	}
}

// PriceHistory is one immutable ledger row.
type PriceHistory struct {
	ID        string
	ProductID string
	OldPrice  Money
	NewPrice  Money
	Action    ActionType
	ChangedAt time.Time
}

// NewEntry builds the ledger row written when a product is created.
func NewEntry(id, productID string, price Money, now time.Time) PriceHistory {
	return PriceHistory{
		ID:        id,
		ProductID: productID,
		OldPrice:  Zero(),
		NewPrice:  price,
		Action:    ActionEntry,
		ChangedAt: now.UTC(),
	}
}

// NewChange builds the ledger row for an update, deriving its action.
func NewChange(id, productID string, oldPrice, newPrice Money, now time.Time) PriceHistory {
	return PriceHistory{
		ID:        id,
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Action:    DeriveAction(oldPrice, newPrice),
		ChangedAt: now.UTC(),
	}
}
