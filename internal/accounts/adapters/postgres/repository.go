package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/storefront/internal/accounts/domain"
	"github.com/shopcore/storefront/internal/accounts/ports"
)

const uniqueViolationCode = "23505"

// UserRepository persists accounts in Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ports.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "email = $1", email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, role, created_at, updated_at
		FROM users
		WHERE %s
	`, where)

	var user domain.User
	var role string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// AddressRepository persists addresses in Postgres.
type AddressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository creates a Postgres-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) Create(ctx context.Context, address domain.Address) error {
	query := `
		INSERT INTO addresses (
			id, user_id, name, mobile_number, pin_code, address,
			city, land_mark, state, country, alt_phone_number,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		address.ID,
		address.UserID,
		address.Name,
		address.MobileNumber,
		address.PinCode,
		address.Address,
		address.City,
		address.LandMark,
		address.State,
		address.Country,
		address.AltPhoneNumber,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `
		SELECT id, user_id, name, mobile_number, pin_code, address,
		       city, land_mark, state, country, alt_phone_number,
		       created_at, updated_at
		FROM addresses
		WHERE id = $1
	`

	var address domain.Address
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&address.ID,
		&address.UserID,
		&address.Name,
		&address.MobileNumber,
		&address.PinCode,
		&address.Address,
		&address.City,
		&address.LandMark,
		&address.State,
		&address.Country,
		&address.AltPhoneNumber,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select address: %w", err)
	}
	return &address, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	query := `
		SELECT id, user_id, name, mobile_number, pin_code, address,
		       city, land_mark, state, country, alt_phone_number,
		       created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var address domain.Address
		if err := rows.Scan(
			&address.ID,
			&address.UserID,
			&address.Name,
			&address.MobileNumber,
			&address.PinCode,
			&address.Address,
			&address.City,
			&address.LandMark,
			&address.State,
			&address.Country,
			&address.AltPhoneNumber,
			&address.CreatedAt,
			&address.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) Update(ctx context.Context, address domain.Address) error {
	query := `
		UPDATE addresses
		SET name = $2, mobile_number = $3, pin_code = $4, address = $5,
		    city = $6, land_mark = $7, state = $8, country = $9,
		    alt_phone_number = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		address.ID,
		address.Name,
		address.MobileNumber,
		address.PinCode,
		address.Address,
		address.City,
		address.LandMark,
		address.State,
		address.Country,
		address.AltPhoneNumber,
		address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM addresses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
