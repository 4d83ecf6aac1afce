// Package repotest provides an in-memory Repository that enforces the same
// unique, foreign key and cascade rules as the PostgreSQL schema.
package repotest

import (
	"context"
	"maps"
	"sync"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]entity.User
	businesses map[uuid.UUID]entity.Business
	customers  map[uuid.UUID]entity.Customer
	categories map[uuid.UUID]entity.Category
	tags       map[uuid.UUID]map[uuid.UUID]struct{}
	offers     map[uuid.UUID]entity.Offer
}

func NewStore() *Store {
	return &Store{
		users:      map[uuid.UUID]entity.User{},
		businesses: map[uuid.UUID]entity.Business{},
		customers:  map[uuid.UUID]entity.Customer{},
		categories: map[uuid.UUID]entity.Category{},
		tags:       map[uuid.UUID]map[uuid.UUID]struct{}{},
		offers:     map[uuid.UUID]entity.Offer{},
	}
}

// New returns a Repository backed by a fresh Store.
func New() (*repository.Repository, *Store) {
	s := NewStore()
	return s.Repository(), s
}

func (s *Store) Repository() *repository.Repository {
	repo := s.bind()
	repo.Tx = &transactor{store: s}
	return repo
}

func (s *Store) bind() *repository.Repository {
	return &repository.Repository{
		User:         &userRepo{s},
		Business:     &businessRepo{s},
		Customer:     &customerRepo{s},
		Category:     &categoryRepo{s},
		UserCategory: &userCategoryRepo{s},
		Offer:        &offerRepo{s},
	}
}

// Counts reports how many rows each table holds.
func (s *Store) Counts() (users, businesses, customers, categories, tags, offers int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, set := range s.tags {
		tags += len(set)
	}
	return len(s.users), len(s.businesses), len(s.customers), len(s.categories), tags, len(s.offers)
}

type snapshot struct {
	users      map[uuid.UUID]entity.User
	businesses map[uuid.UUID]entity.Business
	customers  map[uuid.UUID]entity.Customer
	categories map[uuid.UUID]entity.Category
	tags       map[uuid.UUID]map[uuid.UUID]struct{}
	offers     map[uuid.UUID]entity.Offer
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(s.tags))
	for userID, set := range s.tags {
		tags[userID] = maps.Clone(set)
	}
	return snapshot{
		users:      maps.Clone(s.users),
		businesses: maps.Clone(s.businesses),
		customers:  maps.Clone(s.customers),
		categories: maps.Clone(s.categories),
		tags:       tags,
		offers:     maps.Clone(s.offers),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.businesses = snap.businesses
	s.customers = snap.customers
	s.categories = snap.categories
	s.tags = snap.tags
	s.offers = snap.offers
}

// transactor serialises transactions and restores the snapshot taken at
// begin when fn fails or panics.
type transactor struct {
	store *Store
	txMu  sync.Mutex
}

func (t *transactor) WithinTx(ctx context.Context, fn func(repo *repository.Repository) error) (err error) {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	snap := t.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			t.store.restore(snap)
			panic(p)
		}
	}()

	repo := t.store.bind()
	repo.Tx = joined{repo: repo}
	if err := fn(repo); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type joined struct {
	repo *repository.Repository
}

func (j joined) WithinTx(ctx context.Context, fn func(repo *repository.Repository) error) error {
	return fn(j.repo)
}
