package tr

import (
	"context"

	"github.com/DRSN-tech/storefront/pkg/e"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

// Conn возвращает транзакцию из контекста, а если её нет — переданный пул.
func Conn(ctx context.Context, db trmpgx.Tr) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, db)
}

// TxFromCtx извлекает активную транзакцию из контекста.
// Используется там, где запись вне транзакции недопустима (outbox).
func TxFromCtx(ctx context.Context) (trmpgx.Tr, error) {
	tx := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, nil)
	if tx == nil {
		return nil, e.ErrTransactionNotFound
	}

	return tx, nil
}
