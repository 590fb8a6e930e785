package port

import "context"

// TxManager runs fn inside a transaction carried by ctx. Nested calls join
// the outer transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
