package repository

import (
	"context"
	"errors"
	"fmt"

	"biz-directory/internal/data/entity"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.Querier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, user_id, marital_status, age, price_range, gender, created_at, updated_at`

func scanCustomer(row pgx.Row, c *entity.Customer) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.MaritalStatus,
		&c.Age,
		&c.PriceRange,
		&c.Gender,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

func (cr *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, marital_status, age, price_range, gender,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := cr.db.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.MaritalStatus,
		c.Age,
		c.PriceRange,
		c.Gender,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if violation := database.WriteViolation(err, "user"); violation != nil {
			return violation
		}
		cr.log.Error("Failed to create customer", zap.Error(err), zap.String("user_id", c.UserID.String()))
		return fmt.Errorf("create customer for user %s: %w", c.UserID, err)
	}

	return nil
}

func (cr *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`

	var c entity.Customer
	err := scanCustomer(cr.db.QueryRow(ctx, query, userID), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find customer", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find customer by user %s: %w", userID, err)
	}

	return &c, nil
}

func (cr *customerRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Customer, error) {
	result := make(map[uuid.UUID]*entity.Customer, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := cr.db.Query(ctx, `SELECT `+customerColumns+` FROM customers WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		cr.log.Error("Failed to find customers by users", zap.Error(err))
		return nil, fmt.Errorf("find customers by users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		result[c.UserID] = &c
	}

	return result, rows.Err()
}

func (cr *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET marital_status = $2, age = $3, price_range = $4, gender = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := cr.db.Exec(ctx, query,
		c.ID,
		c.MaritalStatus,
		c.Age,
		c.PriceRange,
		c.Gender,
		c.UpdatedAt,
	)
	if err != nil {
		cr.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", c.ID.String()))
		return fmt.Errorf("update customer %s: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("customer", c.ID.String())
	}

	return nil
}
