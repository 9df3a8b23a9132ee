package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepository struct {
	pool *pgxpool.Pool
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

func (r *StockRepository) BulkSet(ctx context.Context, quantities map[string]int) error {
	rows := make([][]interface{}, 0, len(quantities))
	for productID, qty := range quantities {
		rows = append(rows, []interface{}{productID, qty})
	}
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"stock_levels"},
		[]string{"product_id", "quantity"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *StockRepository) Quantity(ctx context.Context, productID string) (int, error) {
	var quantity int
	err := r.pool.QueryRow(ctx,
		"SELECT quantity FROM stock_levels WHERE product_id = $1", productID,
	).Scan(&quantity)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return quantity, err
}

func (r *StockRepository) GetAll(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, "SELECT product_id, quantity FROM stock_levels")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quantities := make(map[string]int)
	for rows.Next() {
		var productID string
		var quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			return nil, err
		}
		quantities[productID] = quantity
	}
	return quantities, rows.Err()
}

func (r *StockRepository) Decrement(ctx context.Context, productID string, by int) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE stock_levels
        SET quantity = quantity - $2
        WHERE product_id = $1 AND quantity >= $2
    `, productID, by)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	return nil
}

func (r *StockRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE stock_levels CASCADE")
	return err
}
