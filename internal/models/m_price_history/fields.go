package m_price_history

// Field constants for the append-only price_histories table.
const (
	TableName = "price_histories"

	ColHistoryID = "history_id"
	ColProductID = "product_id"
	ColOldPrice  = "old_price"
	ColNewPrice  = "new_price"
	ColAction    = "action"
	ColChangedAt = "changed_at"
)
