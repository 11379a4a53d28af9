package models

// TransactionTag is one row of the tag lookup table used by tag filters.
// Rows are derived from Transaction.Tags when records are loaded.
type TransactionTag struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	TransactionID int64  `gorm:"not null;index:idx_transaction_tags_txn" json:"transactionID"`
	Tag           string `gorm:"type:varchar(100);not null;index:idx_transaction_tags_tag" json:"tag"`
}

// TableName returns the table name for TransactionTag
func (tt *TransactionTag) TableName() string {
	return "transaction_tags"
}

// TagRows builds the lookup rows for a batch of transactions
func TagRows(transactions []Transaction) []TransactionTag {
	var rows []TransactionTag
	for i := range transactions {
		for _, tag := range transactions[i].Tags.Normalize() {
			rows = append(rows, TransactionTag{
				TransactionID: transactions[i].TransactionID,
				Tag:           tag,
			})
		}
	}
	return rows
}
