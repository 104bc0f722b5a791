package memory

import "context"

type contextKey string

const transactionKey contextKey = "storageTransactionID"

func withTransactionID(ctx context.Context, trxID string) context.Context {
	return context.WithValue(ctx, transactionKey, trxID)
}

// transactionIDFromContext reports the transaction a context was derived
// from. The mutex is not reentrant, so a second RunInTransaction on such a
// context must be refused.
func transactionIDFromContext(ctx context.Context) (string, bool) {
	trxID, ok := ctx.Value(transactionKey).(string)

	return trxID, ok && trxID != ""
}
