package docstore

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

type companyRepository struct {
	store store.Store
}

func NewCompanyRepository(s store.Store) repository.CompanyRepository {
	return &companyRepository{store: s}
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	c.CreatedOn = time.Now().UTC()
	return r.store.SetMerge(ctx, store.CollectionCompanies, c.ID, map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"created_on": c.CreatedOn,
	})
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	doc, err := r.store.Get(ctx, store.CollectionCompanies, id)
	if err != nil {
		return nil, err
	}
	return &domain.Company{
		ID:        docString(doc, "id"),
		Name:      docString(doc, "name"),
		Email:     docString(doc, "email"),
		CreatedOn: docTime(doc, "created_on"),
	}, nil
}
