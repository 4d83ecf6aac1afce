package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/utils"

	"github.com/google/uuid"
)

// createIdentity persists the user, its single profile and its category tags
// in one transaction.
func createIdentity(ctx context.Context, repo *repository.Repository, req *request.SignupRequest) (*entity.Identity, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Business != nil {
		req.Business.BranchName = strings.TrimSpace(req.Business.BranchName)
	}
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if (req.Business == nil) == (req.Customer == nil) {
		return nil, apperror.InvalidField("profile", "exactly one of business or customer is required")
	}

	categoryIDs, err := parseCategoryIDs(req.Categories)
	if err != nil {
		return nil, err
	}

	email := req.Email
	username := req.Username

	// fast path only; the unique constraints decide under concurrency
	if err := checkUserAvailable(ctx, repo, uuid.Nil, email, username); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	identity := &entity.Identity{
		User: entity.User{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Email:        email,
			Username:     username,
			PasswordHash: hash,
			PhoneNumber:  req.PhoneNumber,
			Address:      req.Address,
		},
	}

	switch {
	case req.Business != nil:
		b := req.Business
		identity.Profile = &entity.Business{
			BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:         identity.User.ID,
			BranchName:     b.BranchName,
			HotLine:        b.HotLine,
			Address:        b.Address,
			TargetedGender: b.TargetedGender,
			StartHour:      b.StartHour,
			CloseHour:      b.CloseHour,
			OpeningDays:    b.OpeningDays,
		}
	case req.Customer != nil:
		c := req.Customer
		identity.Profile = &entity.Customer{
			BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:        identity.User.ID,
			MaritalStatus: c.MaritalStatus,
			Age:           c.Age,
			PriceRange:    c.PriceRange,
			Gender:        c.Gender,
		}
	}

	err = repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		categories, err := resolveCategories(ctx, tx, categoryIDs)
		if err != nil {
			return err
		}
		identity.Categories = categories

		if err := tx.User.Create(ctx, &identity.User); err != nil {
			return err
		}
		switch profile := identity.Profile.(type) {
		case *entity.Business:
			if err := tx.Business.Create(ctx, profile); err != nil {
				return err
			}
		case *entity.Customer:
			if err := tx.Customer.Create(ctx, profile); err != nil {
				return err
			}
		}
		return tx.UserCategory.Replace(ctx, identity.User.ID, categoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return identity, nil
}

func checkUserAvailable(ctx context.Context, repo *repository.Repository, self uuid.UUID, email, username string) error {
	if email != "" {
		existing, err := repo.User.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != self {
			return apperror.Conflict("email")
		}
	}
	if username != "" {
		existing, err := repo.User.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != self {
			return apperror.Conflict("username")
		}
	}
	return nil
}

// loadIdentity expands a user with its profile and categories.
func loadIdentity(ctx context.Context, repo *repository.Repository, userID uuid.UUID) (*entity.Identity, error) {
	user, err := repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user", userID.String())
	}

	identities, err := expandIdentities(ctx, repo, []*entity.User{user})
	if err != nil {
		return nil, err
	}
	return identities[0], nil
}

func loadIdentities(ctx context.Context, repo *repository.Repository) ([]*entity.Identity, error) {
	users, err := repo.User.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return expandIdentities(ctx, repo, users)
}

func expandIdentities(ctx context.Context, repo *repository.Repository, users []*entity.User) ([]*entity.Identity, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	businesses, err := repo.Business.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	customers, err := repo.Customer.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	categories, err := repo.Category.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	identities := make([]*entity.Identity, 0, len(users))
	for _, u := range users {
		identity := &entity.Identity{User: *u, Categories: categories[u.ID]}
		if b, ok := businesses[u.ID]; ok {
			identity.Profile = b
		} else if c, ok := customers[u.ID]; ok {
			identity.Profile = c
		}
		if identity.Categories == nil {
			identity.Categories = []entity.Category{}
		}
		identities = append(identities, identity)
	}
	return identities, nil
}

// parseCategoryIDs parses and de-duplicates ids, keeping the first occurrence.
func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperror.InvalidField(fmt.Sprintf("categories[%d]", i), "Must be a valid UUID")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveCategories fails with NotFound on the first unknown id.
func resolveCategories(ctx context.Context, repo *repository.Repository, ids []uuid.UUID) ([]entity.Category, error) {
	categories := make([]entity.Category, 0, len(ids))
	for _, id := range ids {
		c, err := repo.Category.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NotFound("category", id.String())
		}
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Key < categories[j].Key })
	return categories, nil
}

// trimField trims an optional field in place.
func trimField(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.InvalidField(field, "Must be a valid UUID")
	}
	return id, nil
}
