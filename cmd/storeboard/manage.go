package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/service"
	"github.com/vtnguyen/storeboard/pkg/geo"
	"github.com/vtnguyen/storeboard/pkg/logger"
)

func (a *app) storeService() service.StoreService {
	geocoder := geo.NewReverseGeocoder(a.cfg.Geo.ReverseGeocodeURL)
	return service.NewStoreService(a.client, geocoder, logger.Get().Zerolog())
}

func (a *app) itemService() service.ItemService {
	return service.NewItemService(a.client, logger.Get().Zerolog())
}

func (a *app) inventoryService() service.InventoryService {
	return service.NewInventoryService(a.client, logger.Get().Zerolog())
}

// storeFormFlags binds the store form fields to a flag set. The tri-state
// active flag is returned separately because empty must mean "unchanged".
func storeFormFlags(fs *flag.FlagSet, f *form.StoreForm) *string {
	fs.StringVar(&f.Name, "name", f.Name, "store name")
	fs.StringVar(&f.Address, "address", f.Address, "street address")
	fs.StringVar(&f.Phone, "phone", f.Phone, "contact phone")
	fs.StringVar(&f.Email, "email", f.Email, "contact email")
	fs.StringVar(&f.Latitude, "lat", f.Latitude, "latitude in decimal degrees")
	fs.StringVar(&f.Longitude, "lng", f.Longitude, "longitude in decimal degrees")
	fs.StringVar(&f.StoreType, "type", f.StoreType, "store type (7-eleven, gs25, circle-k, ...)")
	fs.StringVar(&f.District, "district", f.District, "district")
	fs.StringVar(&f.City, "city", f.City, "city")
	fs.StringVar(&f.OpeningHours, "hours", f.OpeningHours, "opening hours")
	fs.StringVar(&f.Rating, "rating", f.Rating, "rating between 0 and 5")
	return fs.String("active", "", "true or false; empty keeps the current value")
}

// mergeStoreFlags copies only the flags actually given onto the base draft,
// so an edit leaves every other field as the backend has it.
func mergeStoreFlags(fs *flag.FlagSet, edited, base *form.StoreForm) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			base.Name = edited.Name
		case "address":
			base.Address = edited.Address
		case "phone":
			base.Phone = edited.Phone
		case "email":
			base.Email = edited.Email
		case "lat":
			base.Latitude = edited.Latitude
		case "lng":
			base.Longitude = edited.Longitude
		case "type":
			base.StoreType = edited.StoreType
		case "district":
			base.District = edited.District
		case "city":
			base.City = edited.City
		case "hours":
			base.OpeningHours = edited.OpeningHours
		case "rating":
			base.Rating = edited.Rating
		}
	})
}

func (a *app) runStoreCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stores create", flag.ExitOnError)
	draft := form.NewStoreForm()
	active := storeFormFlags(fs, draft)
	resolve := fs.Bool("resolve", false, "fill district and city from the coordinates")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyTriState(*active, &draft.IsActive); err != nil {
		return err
	}

	svc := a.storeService()
	if *resolve {
		if err := a.resolveDraftLocation(ctx, svc, draft); err != nil {
			return err
		}
	}

	store, err := svc.CreateStore(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Store %d (%s) created\n", store.ID, store.Name)
	return nil
}

func (a *app) runStoreEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stores edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "store id")
	edited := &form.StoreForm{}
	active := storeFormFlags(fs, edited)
	resolve := fs.Bool("resolve", false, "fill district and city from the coordinates")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("stores edit requires -id")
	}

	store, err := a.client.GetStore(ctx, *id)
	if err != nil {
		return err
	}
	draft := form.FromStore(*store)
	mergeStoreFlags(fs, edited, draft)
	if err := applyTriState(*active, &draft.IsActive); err != nil {
		return err
	}

	svc := a.storeService()
	if *resolve {
		if err := a.resolveDraftLocation(ctx, svc, draft); err != nil {
			return err
		}
	}

	updated, err := svc.UpdateStore(ctx, *id, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Store %d (%s) updated\n", updated.ID, updated.Name)
	return nil
}

// resolveDraftLocation runs the district/address lookup for the draft's
// coordinates and marks district and city as auto-filled.
func (a *app) resolveDraftLocation(ctx context.Context, svc service.StoreService, draft *form.StoreForm) error {
	lat, latErr := strconv.ParseFloat(draft.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(draft.Longitude, 64)
	if latErr != nil || lngErr != nil {
		return errors.New("-resolve needs numeric -lat and -lng")
	}

	location, err := svc.ResolveLocation(ctx, lat, lng)
	if err != nil {
		return err
	}
	draft.ResolveLocation(location.District, location.City)
	fmt.Fprintf(a.out, "Location resolved to %s, %s (%s)\n",
		location.District, location.City, location.Address)
	return nil
}

func itemFormFlags(fs *flag.FlagSet, f *form.ItemForm) *string {
	fs.StringVar(&f.Name, "name", f.Name, "item name")
	fs.StringVar(&f.Description, "description", f.Description, "item description")
	fs.StringVar(&f.Category, "category", f.Category, "category (beverages, snacks, ...)")
	fs.StringVar(&f.Brand, "brand", f.Brand, "brand")
	fs.StringVar(&f.Barcode, "barcode", f.Barcode, "barcode, 8-20 digits")
	return fs.String("active", "", "true or false; empty keeps the current value")
}

func mergeItemFlags(fs *flag.FlagSet, edited, base *form.ItemForm) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			base.Name = edited.Name
		case "description":
			base.Description = edited.Description
		case "category":
			base.Category = edited.Category
		case "brand":
			base.Brand = edited.Brand
		case "barcode":
			base.Barcode = edited.Barcode
		}
	})
}

func (a *app) runItemCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items create", flag.ExitOnError)
	draft := form.NewItemForm()
	active := itemFormFlags(fs, draft)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyTriState(*active, &draft.IsActive); err != nil {
		return err
	}

	item, err := a.itemService().CreateItem(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item %d (%s) created\n", item.ID, item.Name)
	return nil
}

func (a *app) runItemEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "item id")
	edited := &form.ItemForm{}
	active := itemFormFlags(fs, edited)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("items edit requires -id")
	}

	item, err := a.client.GetItem(ctx, *id)
	if err != nil {
		return err
	}
	draft := form.FromItem(*item)
	mergeItemFlags(fs, edited, draft)
	if err := applyTriState(*active, &draft.IsActive); err != nil {
		return err
	}

	updated, err := a.itemService().UpdateItem(ctx, *id, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item %d (%s) updated\n", updated.ID, updated.Name)
	return nil
}

func (a *app) runItemDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "item id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("items delete requires -id")
	}

	item, err := a.client.GetItem(ctx, *id)
	if err != nil {
		return err
	}
	if !*yes && !a.confirm(fmt.Sprintf("Delete item %q?", item.Name)) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.itemService().DeleteItem(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item %q deleted\n", item.Name)
	return nil
}

func (a *app) runInventoryCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inventory create", flag.ExitOnError)
	store := fs.Int64("store", 0, "store id")
	item := fs.Int64("item", 0, "item id")
	available := fs.String("available", "", "true or false, defaults to true")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := form.NewInventoryForm()
	if *store > 0 {
		draft.StoreID = store
	}
	if *item > 0 {
		draft.ItemID = item
	}
	if err := applyTriState(*available, &draft.IsAvailable); err != nil {
		return err
	}

	record, err := a.inventoryService().CreateInventory(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Inventory record %d created (store %d, item %d)\n",
		record.ID, record.StoreID, record.ItemID)
	return nil
}

func (a *app) runInventoryEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inventory edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "inventory record id")
	available := fs.String("available", "", "true or false; empty keeps the current value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("inventory edit requires -id")
	}

	record, err := a.client.GetInventory(ctx, *id)
	if err != nil {
		return err
	}
	draft := form.FromInventory(*record)
	if err := applyTriState(*available, &draft.IsAvailable); err != nil {
		return err
	}

	updated, err := a.inventoryService().UpdateInventory(ctx, *id, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Inventory record %d updated\n", updated.ID)
	return nil
}

func (a *app) runInventoryDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inventory delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "inventory record id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("inventory delete requires -id")
	}

	record, err := a.client.GetInventory(ctx, *id)
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete inventory for %q at %q?", record.ItemName, record.StoreName)
	if !*yes && !a.confirm(prompt) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.inventoryService().DeleteInventory(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Inventory record %d deleted\n", *id)
	return nil
}

// confirm asks a y/N question on the app's streams. Anything other than an
// explicit yes declines.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// applyTriState folds a true/false/empty flag into a bool field, leaving it
// untouched when the flag was empty.
func applyTriState(value string, target *bool) error {
	v, err := triState(value)
	if err != nil {
		return err
	}
	if v != nil {
		*target = *v
	}
	return nil
}

// validationDetail expands a ValidationError into one line per field for
// terminal display.
func validationDetail(err error) (string, bool) {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return "", false
	}
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	lines := []string{"validation failed"}
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("  %s: %s", field, verr.Fields[field]))
	}
	return strings.Join(lines, "\n"), true
}
