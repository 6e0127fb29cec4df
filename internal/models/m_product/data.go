package m_product

import (
	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product from a map of
// column values keyed by the names in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertMap(TableName, values)
}

// UpdateMutation builds a spanner.Update mutation. values must not contain the
// key column; productID is added here.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	row := make(map[string]interface{}, len(values)+1)
	for col, v := range values {
		row[col] = v
	}
	row[ColProductID] = productID
	return spanner.UpdateMap(TableName, row)
}

// DeleteMutation removes the product row.
func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// BuildInsertMap prepares the canonical column values for a product row.
// price is passed already encoded for the NUMERIC column.
func BuildInsertMap(productID, name, description string, price spanner.NullNumeric, category, sku string) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:   productID,
		ColName:        name,
		ColDescription: description,
		ColPrice:       price,
		ColCategory:    category,
		ColSku:         sku,
	}
}

// BuildUpdateMap is BuildInsertMap without the key column.
func BuildUpdateMap(name, description string, price spanner.NullNumeric, category, sku string) map[string]interface{} {
	return map[string]interface{}{
		ColName:        name,
		ColDescription: description,
		ColPrice:       price,
		ColCategory:    category,
		ColSku:         sku,
	}
}
