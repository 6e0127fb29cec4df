package contracts

// ReadModel is what query handlers read from.
type ReadModel interface {
	ProductReader
	LedgerReader
}
