package memory

import "errors"

var (
	ErrNestedTransaction = errors.New("nested transaction")
	ErrTransactionClosed = errors.New("transaction is closed")
)
