package repotest

import (
	"context"
	"slices"
	"sort"

	"biz-directory/internal/data/entity"
	"biz-directory/pkg/apperror"

	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkUserUnique(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (s *Store) checkUserUnique(user *entity.User) error {
	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email {
			return apperror.Conflict("email")
		}
		if existing.Username == user.Username {
			return apperror.Conflict("username")
		}
	}
	return nil
}

func (r *userRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *userRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].Username < users[j].Username
	})
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return apperror.NotFound("user", user.ID.String())
	}
	if err := r.s.checkUserUnique(user); err != nil {
		return err
	}
	updated := *user
	updated.CreatedAt = existing.CreatedAt
	r.s.users[user.ID] = updated
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperror.NotFound("user", id.String())
	}

	// ON DELETE CASCADE: users -> businesses -> offers, customers, user_categories
	for businessID, b := range r.s.businesses {
		if b.UserID != id {
			continue
		}
		for offerID, o := range r.s.offers {
			if o.BusinessID == businessID {
				delete(r.s.offers, offerID)
			}
		}
		delete(r.s.businesses, businessID)
	}
	for customerID, c := range r.s.customers {
		if c.UserID == id {
			delete(r.s.customers, customerID)
		}
	}
	delete(r.s.tags, id)
	delete(r.s.users, id)
	return nil
}

type businessRepo struct{ s *Store }

func (r *businessRepo) Create(ctx context.Context, b *entity.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[b.UserID]; !ok {
		return apperror.NotFound("user", "")
	}
	for _, existing := range r.s.businesses {
		if existing.UserID == b.UserID {
			return apperror.Conflict("business")
		}
	}
	r.s.businesses[b.ID] = *b
	return nil
}

func (r *businessRepo) find(match func(entity.Business) bool) (*entity.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.businesses {
		if match(b) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *businessRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	return r.find(func(b entity.Business) bool { return b.ID == id })
}

func (r *businessRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	return r.find(func(b entity.Business) bool { return b.UserID == userID })
}

func (r *businessRepo) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uuid.UUID]*entity.Business, len(userIDs))
	for _, b := range r.s.businesses {
		if slices.Contains(userIDs, b.UserID) {
			result[b.UserID] = &b
		}
	}
	return result, nil
}

func (r *businessRepo) FindAll(ctx context.Context) ([]*entity.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	businesses := make([]*entity.Business, 0, len(r.s.businesses))
	for _, b := range r.s.businesses {
		businesses = append(businesses, &b)
	}
	sort.Slice(businesses, func(i, j int) bool {
		return businesses[i].BranchName < businesses[j].BranchName
	})
	return businesses, nil
}

func (r *businessRepo) Update(ctx context.Context, b *entity.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.businesses[b.ID]
	if !ok {
		return apperror.NotFound("business", b.ID.String())
	}
	updated := *b
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.s.businesses[b.ID] = updated
	return nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[c.UserID]; !ok {
		return apperror.NotFound("user", "")
	}
	for _, existing := range r.s.customers {
		if existing.UserID == c.UserID {
			return apperror.Conflict("customer")
		}
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.customers {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uuid.UUID]*entity.Customer, len(userIDs))
	for _, c := range r.s.customers {
		if slices.Contains(userIDs, c.UserID) {
			result[c.UserID] = &c
		}
	}
	return result, nil
}

func (r *customerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.customers[c.ID]
	if !ok {
		return apperror.NotFound("customer", c.ID.String())
	}
	updated := *c
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.s.customers[c.ID] = updated
	return nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Key == c.Key {
			return apperror.Conflict("key")
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *categoryRepo) FindByKey(ctx context.Context, key string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Key == key {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	categories := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Key < categories[j].Key })
	return categories, nil
}

func (r *categoryRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	byUser, _ := r.FindByUserIDs(ctx, []uuid.UUID{userID})
	if categories, ok := byUser[userID]; ok {
		return categories, nil
	}
	return []entity.Category{}, nil
}

func (r *categoryRepo) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uuid.UUID][]entity.Category, len(userIDs))
	for _, userID := range userIDs {
		set, ok := r.s.tags[userID]
		if !ok {
			continue
		}
		categories := make([]entity.Category, 0, len(set))
		for categoryID := range set {
			categories = append(categories, r.s.categories[categoryID])
		}
		sort.Slice(categories, func(i, j int) bool {
			return categories[i].Key < categories[j].Key
		})
		result[userID] = categories
	}
	return result, nil
}

func (r *categoryRepo) CountUsers(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, set := range r.s.tags {
		if _, ok := set[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return apperror.NotFound("category", id.String())
	}
	// ON DELETE RESTRICT from user_categories
	for _, set := range r.s.tags {
		if _, ok := set[id]; ok {
			return apperror.DependencyConflict("category is still referenced")
		}
	}
	delete(r.s.categories, id)
	return nil
}

type userCategoryRepo struct{ s *Store }

func (r *userCategoryRepo) Replace(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return apperror.NotFound("user", "")
	}

	set := make(map[uuid.UUID]struct{}, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		if _, ok := r.s.categories[categoryID]; !ok {
			return apperror.NotFound("category", "")
		}
		set[categoryID] = struct{}{}
	}

	if len(set) == 0 {
		delete(r.s.tags, userID)
		return nil
	}
	r.s.tags[userID] = set
	return nil
}

type offerRepo struct{ s *Store }

func (r *offerRepo) checkUnique(o *entity.Offer) error {
	for id, existing := range r.s.offers {
		if id == o.ID {
			continue
		}
		if existing.BusinessID == o.BusinessID && existing.Name == o.Name {
			return apperror.Conflict("name")
		}
		if existing.RedemptionCode == o.RedemptionCode {
			return apperror.Conflict("redemption_code")
		}
	}
	return nil
}

func (r *offerRepo) Create(ctx context.Context, o *entity.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.businesses[o.BusinessID]; !ok {
		return apperror.NotFound("business", "")
	}
	if err := r.checkUnique(o); err != nil {
		return err
	}
	r.s.offers[o.ID] = *o
	return nil
}

func (r *offerRepo) find(match func(entity.Offer) bool) (*entity.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.offers {
		if match(o) {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *offerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	return r.find(func(o entity.Offer) bool { return o.ID == id })
}

func (r *offerRepo) FindByCode(ctx context.Context, code string) (*entity.Offer, error) {
	return r.find(func(o entity.Offer) bool { return o.RedemptionCode == code })
}

func (r *offerRepo) FindByBusinessAndName(ctx context.Context, businessID uuid.UUID, name string) (*entity.Offer, error) {
	return r.find(func(o entity.Offer) bool { return o.BusinessID == businessID && o.Name == name })
}

func (r *offerRepo) FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	offers := make([]*entity.Offer, 0)
	for _, o := range r.s.offers {
		if o.BusinessID == businessID {
			offers = append(offers, &o)
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].StartDate.Equal(offers[j].StartDate) {
			return offers[i].StartDate.Before(offers[j].StartDate)
		}
		return offers[i].Name < offers[j].Name
	})
	return offers, nil
}

func (r *offerRepo) Update(ctx context.Context, o *entity.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.offers[o.ID]
	if !ok {
		return apperror.NotFound("offer", o.ID.String())
	}

	updated := existing
	updated.Name = o.Name
	updated.Description = o.Description
	updated.StartDate = o.StartDate
	updated.EndDate = o.EndDate
	updated.Photo = o.Photo
	updated.UpdatedAt = o.UpdatedAt
	if err := r.checkUnique(&updated); err != nil {
		return err
	}
	r.s.offers[o.ID] = updated
	return nil
}

func (r *offerRepo) SetQRCodePath(ctx context.Context, id uuid.UUID, path string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.offers[id]
	if !ok || o.QRCodePath != nil {
		return apperror.NotFound("offer", id.String())
	}
	o.QRCodePath = &path
	r.s.offers[id] = o
	return nil
}

func (r *offerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.offers[id]; !ok {
		return apperror.NotFound("offer", id.String())
	}
	delete(r.s.offers, id)
	return nil
}
