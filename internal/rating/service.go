package rating

import (
	"context"
	"strings"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/auth"
	"github.com/ratepoint/service-core/internal/rating/entity"
	"github.com/ratepoint/service-core/pkg/utilities"
)

// Repository is the data-access surface the service needs. The Upsert
// contract matters: it must be one atomic storage operation, never a
// read-then-write from here.
type Repository interface {
	Upsert(ctx context.Context, id, userID, storeID string, value int) (*entity.Rating, error)
	ListByStore(ctx context.Context, storeID string) ([]entity.Rating, error)
	Aggregate(ctx context.Context, storeID string) (*entity.Aggregate, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Rating, error)
	AggregatesByOwner(ctx context.Context, ownerID string) ([]entity.StoreAggregate, error)
}

// Service handles rating submission and read models.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Submit validates and upserts the caller's rating for a store. Any
// authenticated role may rate any store, the store's owner included.
func (s *Service) Submit(ctx context.Context, userID, storeID string, value int) (*entity.Rating, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("user id is required")
	}
	if strings.TrimSpace(storeID) == "" {
		return nil, apperr.Validation("store_id is required")
	}
	if value < 1 || value > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	// the fresh id is discarded when the pair already exists
	row, err := s.repo.Upsert(ctx, utilities.NewKSUID(), userID, storeID, value)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return row, nil
}

// StoreRatings is the read model for a store's rating page.
type StoreRatings struct {
	Ratings []entity.Rating   `json:"ratings"`
	Stats   *entity.Aggregate `json:"stats"`
}

// ForStore returns all ratings for a store plus the live aggregate.
func (s *Service) ForStore(ctx context.Context, storeID string) (*StoreRatings, error) {
	ratings, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	agg, err := s.repo.Aggregate(ctx, storeID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &StoreRatings{Ratings: ratings, Stats: agg}, nil
}

// Average returns the live aggregate alone.
func (s *Service) Average(ctx context.Context, storeID string) (*entity.Aggregate, error) {
	agg, err := s.repo.Aggregate(ctx, storeID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return agg, nil
}

// OwnerRatings is the read model for an owner's dashboard.
type OwnerRatings struct {
	Ratings  []entity.Rating         `json:"ratings"`
	Averages []entity.StoreAggregate `json:"averages"`
}

// ForOwner returns every rating across the owner's stores with per-store
// averages. Requester must be the owner or an admin.
func (s *Service) ForOwner(ctx context.Context, ownerID, requesterID, requesterRole string) (*OwnerRatings, error) {
	if requesterID != ownerID && requesterRole != auth.RoleAdmin {
		return nil, apperr.Forbidden("not your dashboard")
	}
	ratings, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	averages, err := s.repo.AggregatesByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &OwnerRatings{Ratings: ratings, Averages: averages}, nil
}
