package repository

import (
	"context"

	"biz-directory/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn against repositories bound to one transaction. Any error
// returned by fn rolls every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type Repository struct {
	User         UserRepository
	Business     BusinessRepository
	Customer     CustomerRepository
	Category     CategoryRepository
	UserCategory UserCategoryRepository
	Offer        OfferRepository
	Tx           Transactor
}

func NewRepository(db database.Pool, log *zap.Logger) *Repository {
	repo := bind(db, log)
	repo.Tx = &pgTransactor{db: db, log: log}
	return repo
}

func bind(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(q, log),
		Business:     NewBusinessRepository(q, log),
		Customer:     NewCustomerRepository(q, log),
		Category:     NewCategoryRepository(q, log),
		UserCategory: NewUserCategoryRepository(q, log),
		Offer:        NewOfferRepository(q, log),
	}
}

type pgTransactor struct {
	db  database.Pool
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return database.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		repo := bind(tx, t.log)
		repo.Tx = joinedTx{repo: repo}
		return fn(repo)
	})
}

// joinedTx lets code already inside a transaction call WithinTx again.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return fn(j.repo)
}
