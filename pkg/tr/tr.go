package tr

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/quickbite/go-backend/pkg/e"
)

type txKey struct{}

// CtxWithTx кладет объект транзакции в контекст. Значение принимается
// как any: менеджер транзакций отдает необобщенный Transaction(),
// тип проверяется при извлечении.
func CtxWithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
