package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/internal/app/selector"
)

// searchTimeout bounds one remote picker search fired from the debounce
// timer, which has no request-scoped context of its own.
const searchTimeout = 15 * time.Second

// NewDistrictPicker builds a selector over districts with remote search
// against the district endpoint. Search failures keep the current options.
func NewDistrictPicker(client *api.Client, logger zerolog.Logger, onSelect func(*selector.Option)) *selector.Selector {
	var sel *selector.Selector
	sel = selector.New(selector.Config{
		Placeholder: "Search districts...",
		OnSelect:    onSelect,
		OnSearch: func(term string) {
			sel.SetLoading(true)
			defer sel.SetLoading(false)

			ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
			defer cancel()
			page, err := client.SearchDistricts(ctx, api.DistrictSearchParams{Search: term})
			if err != nil {
				logger.Warn().Err(err).Str("term", term).Msg("district search failed")
				return
			}
			sel.SetOptions(districtOptions(page.Results))
		},
	})
	return sel
}

// NewItemPicker builds a selector over catalog items with remote search.
func NewItemPicker(client *api.Client, logger zerolog.Logger, onSelect func(*selector.Option)) *selector.Selector {
	var sel *selector.Selector
	sel = selector.New(selector.Config{
		Placeholder: "Search items...",
		OnSelect:    onSelect,
		OnSearch: func(term string) {
			sel.SetLoading(true)
			defer sel.SetLoading(false)

			ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
			defer cancel()
			page, err := client.SearchItems(ctx, api.ItemSearchParams{Search: term})
			if err != nil {
				logger.Warn().Err(err).Str("term", term).Msg("item search failed")
				return
			}
			sel.SetOptions(itemOptions(page.Results))
		},
	})
	return sel
}

// NewStorePicker builds a selector over stores with remote search.
func NewStorePicker(client *api.Client, logger zerolog.Logger, onSelect func(*selector.Option)) *selector.Selector {
	var sel *selector.Selector
	sel = selector.New(selector.Config{
		Placeholder: "Search stores...",
		OnSelect:    onSelect,
		OnSearch: func(term string) {
			sel.SetLoading(true)
			defer sel.SetLoading(false)

			ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
			defer cancel()
			page, err := client.SearchStores(ctx, api.StoreSearchParams{Search: term})
			if err != nil {
				logger.Warn().Err(err).Str("term", term).Msg("store search failed")
				return
			}
			sel.SetOptions(storeOptions(page.Results))
		},
	})
	return sel
}

func districtOptions(districts []model.District) []selector.Option {
	options := make([]selector.Option, 0, len(districts))
	for _, d := range districts {
		options = append(options, selector.Option{ID: d.ID, Name: d.Name, Subtitle: d.City})
	}
	return options
}

func itemOptions(items []model.Item) []selector.Option {
	options := make([]selector.Option, 0, len(items))
	for _, item := range items {
		options = append(options, selector.Option{
			ID:          item.ID,
			Name:        item.Name,
			Subtitle:    item.Brand,
			Description: item.Description,
		})
	}
	return options
}

func storeOptions(stores []model.Store) []selector.Option {
	options := make([]selector.Option, 0, len(stores))
	for _, store := range stores {
		options = append(options, selector.Option{ID: store.ID, Name: store.Name, Subtitle: store.Address})
	}
	return options
}
