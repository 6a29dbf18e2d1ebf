package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spec-kit/winter-cloth-service/internal/events"
	"github.com/spec-kit/winter-cloth-service/internal/repository"
)

// CatalogService exposes CRUD over the winter cloth collection.
type CatalogService struct {
	cloths     repository.ClothRepository
	cache      ListCache
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service. cache may be nil to disable caching.
func NewCatalogService(cloths repository.ClothRepository, cache ListCache, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{cloths: cloths, cache: cache, dispatcher: dispatcher}
}

// List returns at most limit documents, or all of them when limit is not
// positive. Only the unlimited listing goes through the cache; limited
// queries hit the store directly.
func (s *CatalogService) List(ctx context.Context, limit int64) ([]bson.M, error) {
	if limit > 0 {
		return s.cloths.List(ctx, limit)
	}

	if s.cache != nil {
		if docs, err := s.cache.Get(ctx); err == nil && docs != nil {
			return docs, nil
		}
	}

	docs, err := s.cloths.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, docs)
	}
	return docs, nil
}

// Get returns a single document by its hex identifier. Malformed ids map to
// repository.ErrInvalidClothID, lookup misses to repository.ErrClothNotFound.
func (s *CatalogService) Get(ctx context.Context, idHex string) (bson.M, error) {
	id, err := repository.ParseClothID(idHex)
	if err != nil {
		return nil, err
	}
	return s.cloths.GetByID(ctx, id)
}

// Create inserts an arbitrary payload and returns the assigned id hex.
func (s *CatalogService) Create(ctx context.Context, payload map[string]any) (string, error) {
	id, err := s.cloths.Create(ctx, payload)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventClothCreated, map[string]any{
			"cloth_id": id.Hex(),
		}))
	}
	return id.Hex(), nil
}

// Delete removes a document by its hex identifier and reports how many
// documents went away; 0 for an id that matched nothing.
func (s *CatalogService) Delete(ctx context.Context, idHex string) (int64, error) {
	id, err := repository.ParseClothID(idHex)
	if err != nil {
		return 0, err
	}

	count, err := s.cloths.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	if s.dispatcher != nil && count > 0 {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventClothDeleted, map[string]any{
			"cloth_id": id.Hex(),
		}))
	}
	return count, nil
}
