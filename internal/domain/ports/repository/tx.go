package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Repositories accept nil for the
// non-transactional path; the concrete type is infra-defined (pgx.Tx).
type Tx interface{}

// TransactionManager executes fn inside a database transaction, passing the
// tx handle through so repositories can share it. Keep this interface small.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
