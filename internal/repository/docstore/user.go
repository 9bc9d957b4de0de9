package docstore

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

type userRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) repository.UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	u.CreatedOn = time.Now().UTC()
	return r.store.SetMerge(ctx, store.CollectionUsers, u.ID, map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"role":          string(u.Role),
		"company_id":    u.CompanyID,
		"created_on":    u.CreatedOn,
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, store.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	return userFromDoc(doc), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.store.Query(ctx, store.CollectionUsers, store.Filter{Field: "email", Value: email})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return userFromDoc(docs[0]), nil
}

func userFromDoc(doc store.Document) *domain.User {
	return &domain.User{
		ID:           docString(doc, "id"),
		Email:        docString(doc, "email"),
		Name:         docString(doc, "name"),
		PasswordHash: docString(doc, "password_hash"),
		Role:         domain.UserRole(docString(doc, "role")),
		CompanyID:    docString(doc, "company_id"),
		CreatedOn:    docTime(doc, "created_on"),
	}
}
