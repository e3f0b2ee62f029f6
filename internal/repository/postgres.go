package repository

import (
	"context"
	"errors"
	"fmt"

	"address-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createAddressesTable = `
	CREATE TABLE IF NOT EXISTS addresses (
		id        BIGSERIAL PRIMARY KEY,
		name      TEXT NOT NULL,
		address   TEXT NOT NULL,
		latitude  DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
`

// Execer is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the addresses table if it does not exist yet.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, createAddressesTable); err != nil {
		return unavailable("failed to create schema", err)
	}
	return nil
}

// Repository implements the address store on top of PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new address and returns it with its assigned id
func (r *Repository) Create(ctx context.Context, in models.AddressInput) (models.Address, error) {
	a := in.ToAddress(0)

	sql := `
		INSERT INTO addresses (name, address, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, sql, a.Name, a.Address, a.Latitude, a.Longitude).Scan(&a.ID); err != nil {
		return models.Address{}, unavailable("failed to insert address", err)
	}

	return a, nil
}

// Update replaces every field of the address with the given id
func (r *Repository) Update(ctx context.Context, id int64, in models.AddressInput) (models.Address, error) {
	a := in.ToAddress(id)

	sql := `
		UPDATE addresses
		SET name = $2, address = $3, latitude = $4, longitude = $5
		WHERE id = $1
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql, id, a.Name, a.Address, a.Latitude, a.Longitude).Scan(&a.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Address{}, fmt.Errorf("repository: address %d: %w", id, models.ErrNotFound)
		}
		return models.Address{}, unavailable("failed to update address", err)
	}

	return a, nil
}

// Delete removes the address with the given id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return unavailable("failed to delete address", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: address %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// List returns every stored address ordered by id
func (r *Repository) List(ctx context.Context) ([]models.Address, error) {
	sql := `
		SELECT
			id,
			name,
			address,
			latitude,
			longitude
		FROM addresses
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, unavailable("failed to execute list query", err)
	}
	defer rows.Close()

	addresses := make([]models.Address, 0)
	for rows.Next() {
		var a models.Address
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Address,
			&a.Latitude,
			&a.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("error iterating rows", err)
	}

	return addresses, nil
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return unavailable("ping failed", err)
	}
	return nil
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("repository: %s: %w: %w", msg, models.ErrStoreUnavailable, err)
}
