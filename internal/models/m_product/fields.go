package m_product

// Field constants for the products table.
const (
	TableName = "products"

	// SkuIndex is the unique index on sku; Spanner names it in violation errors.
	SkuIndex = "products_by_sku"

	ColProductID   = "product_id"
	ColName        = "name"
	ColDescription = "description"
	ColPrice       = "price"
	ColCategory    = "category"
	ColSku         = "sku"
)

// AllColumns lists the columns in the order the read side scans them.
var AllColumns = []string{ColProductID, ColName, ColDescription, ColPrice, ColCategory, ColSku}
