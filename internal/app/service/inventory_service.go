package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/model"
)

type InventoryService interface {
	CreateInventory(ctx context.Context, draft *form.InventoryForm) (*model.Inventory, error)
	UpdateInventory(ctx context.Context, id int64, draft *form.InventoryForm) (*model.Inventory, error)
	DeleteInventory(ctx context.Context, id int64) error
}

type inventoryService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewInventoryService(client *api.Client, logger zerolog.Logger) InventoryService {
	return &inventoryService{client: client, logger: logger}
}

func (s *inventoryService) CreateInventory(ctx context.Context, draft *form.InventoryForm) (*model.Inventory, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	record, err := s.client.CreateInventory(ctx, draft.ToWrite())
	if err != nil {
		// One record per (store, item); a duplicate comes back as a
		// conflict and belongs next to the item field.
		if errors.Is(err, api.ErrConflict) {
			return nil, &ValidationError{Fields: form.Errors{
				"item": "This store already has an inventory record for this item",
			}}
		}
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("inventory_id", record.ID).
		Int64("store_id", record.StoreID).
		Int64("item_id", record.ItemID).
		Msg("inventory record created")
	return record, nil
}

func (s *inventoryService) UpdateInventory(ctx context.Context, id int64, draft *form.InventoryForm) (*model.Inventory, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	record, err := s.client.UpdateInventory(ctx, id, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("inventory_id", id).Msg("inventory record updated")
	return record, nil
}

func (s *inventoryService) DeleteInventory(ctx context.Context, id int64) error {
	if err := s.client.DeleteInventory(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("inventory_id", id).Msg("inventory record deleted")
	return nil
}
