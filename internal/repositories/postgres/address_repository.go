package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rasoihub/tiffinbox/internal/models"
)

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) BulkCreate(ctx context.Context, addresses []*models.Address) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"addresses"},
		[]string{"id", "customer_id", "housename", "street", "city", "pincode"},
		pgx.CopyFromSlice(len(addresses), func(i int) ([]interface{}, error) {
			return []interface{}{
				addresses[i].ID,
				addresses[i].CustomerID,
				addresses[i].HouseName,
				addresses[i].Street,
				addresses[i].City,
				addresses[i].Pincode,
			}, nil
		}),
	)
	return err
}

func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	query := `
        INSERT INTO addresses (
            id, customer_id, housename, street, city, pincode
        ) VALUES (
            $1, $2, $3, $4, $5, $6
        )
    `

	_, err := r.pool.Exec(ctx, query,
		address.ID,
		address.CustomerID,
		address.HouseName,
		address.Street,
		address.City,
		address.Pincode,
	)
	return err
}

func (r *AddressRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*models.Address, error) {
	query := `
        SELECT id, customer_id, housename, street, city, pincode
        FROM addresses
        WHERE customer_id = $1
    `
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		address := &models.Address{}
		err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.HouseName,
			&address.Street,
			&address.City,
			&address.Pincode,
		)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM addresses").Scan(&count)
	return count, err
}

func (r *AddressRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE addresses CASCADE")
	return err
}
