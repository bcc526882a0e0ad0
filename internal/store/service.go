package store

import (
	"context"
	"strings"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/store/entity"
	"github.com/ratepoint/service-core/internal/store/repo"
	"github.com/ratepoint/service-core/pkg/utilities"
)

// Repository is the data-access surface the service needs.
type Repository interface {
	Create(ctx context.Context, s *entity.Store) error
	List(ctx context.Context, f repo.Filter, sortBy, order string) ([]entity.Store, error)
}

// Service handles store creation and listing.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// AddInput carries the fields for store creation. Email is optional.
type AddInput struct {
	Name    string
	Address string
	Email   string
	OwnerID string
}

// Add persists a new store. Name, address and owner id are all required.
// OwnerID is deliberately not checked against the users table.
func (s *Service) Add(ctx context.Context, in AddInput) (*entity.Store, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, apperr.Validation("address is required")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, apperr.Validation("owner_id is required")
	}
	st := &entity.Store{
		ID:      utilities.NewKSUID(),
		Name:    strings.TrimSpace(in.Name),
		Address: in.Address,
		OwnerID: in.OwnerID,
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		st.Email = &e
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, apperr.Storage(err)
	}
	return st, nil
}

// List returns stores matching the filter.
func (s *Service) List(ctx context.Context, f repo.Filter, sortBy, order string) ([]entity.Store, error) {
	stores, err := s.repo.List(ctx, f, sortBy, order)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return stores, nil
}
