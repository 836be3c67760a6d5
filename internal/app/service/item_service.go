package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/model"
)

type ItemService interface {
	CreateItem(ctx context.Context, draft *form.ItemForm) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, draft *form.ItemForm) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewItemService(client *api.Client, logger zerolog.Logger) ItemService {
	return &itemService{client: client, logger: logger}
}

func (s *itemService) CreateItem(ctx context.Context, draft *form.ItemForm) (*model.Item, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	item, err := s.client.CreateItem(ctx, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("item_id", item.ID).Str("name", item.Name).Msg("item created")
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, draft *form.ItemForm) (*model.Item, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	item, err := s.client.UpdateItem(ctx, id, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("item_id", id).Msg("item updated")
	return item, nil
}

// DeleteItem removes an item. Confirmation happens in the UI layer before
// this is called.
func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.client.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", id).Msg("item deleted")
	return nil
}
