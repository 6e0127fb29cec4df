package m_price_history

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap constructs the column values of one ledger row.
func BuildInsertMap(historyID, productID string, oldPrice, newPrice spanner.NullNumeric, action string, changedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColHistoryID: historyID,
		ColProductID: productID,
		ColOldPrice:  oldPrice,
		ColNewPrice:  newPrice,
		ColAction:    action,
		ColChangedAt: changedAt,
	}
}

// InsertMutation is the only mutation this table ever receives.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertMap(TableName, values)
}
