package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/pkg/geo"
)

// ResolvedLocation is what picking a point on the map yields: the district
// and city from the backend plus a best-effort display address.
type ResolvedLocation struct {
	District string
	City     string
	Address  string
}

type StoreService interface {
	CreateStore(ctx context.Context, draft *form.StoreForm) (*model.Store, error)
	UpdateStore(ctx context.Context, id int64, draft *form.StoreForm) (*model.Store, error)
	DeleteStore(ctx context.Context, id int64) error
	ResolveLocation(ctx context.Context, latitude, longitude float64) (*ResolvedLocation, error)
}

type storeService struct {
	client   *api.Client
	geocoder *geo.ReverseGeocoder
	logger   zerolog.Logger
}

func NewStoreService(client *api.Client, geocoder *geo.ReverseGeocoder, logger zerolog.Logger) StoreService {
	return &storeService{client: client, geocoder: geocoder, logger: logger}
}

func (s *storeService) CreateStore(ctx context.Context, draft *form.StoreForm) (*model.Store, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	store, err := s.client.CreateStore(ctx, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("store_id", store.ID).Str("name", store.Name).Msg("store created")
	return store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, id int64, draft *form.StoreForm) (*model.Store, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	store, err := s.client.UpdateStore(ctx, id, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("store_id", id).Msg("store updated")
	return store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, id int64) error {
	if err := s.client.DeleteStore(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("store_id", id).Msg("store deleted")
	return nil
}

// ResolveLocation turns a picked coordinate into district, city and display
// address. The district lookup must succeed and its failure is returned to
// the user; the address lookup is best-effort and silently falls back to
// the raw coordinates. Both run concurrently.
func (s *storeService) ResolveLocation(ctx context.Context, latitude, longitude float64) (*ResolvedLocation, error) {
	addressCh := make(chan string, 1)
	go func() {
		addressCh <- s.geocoder.BestEffortAddress(ctx, latitude, longitude)
	}()

	lookup, err := s.client.LookupDistrictByCoordinates(ctx, latitude, longitude)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("latitude", strconv.FormatFloat(latitude, 'f', -1, 64)).
			Str("longitude", strconv.FormatFloat(longitude, 'f', -1, 64)).
			Msg("district lookup failed")
		return nil, err
	}

	resolved := &ResolvedLocation{City: lookup.City, Address: <-addressCh}
	if lookup.District != nil {
		resolved.District = lookup.District.Name
	}
	return resolved, nil
}
