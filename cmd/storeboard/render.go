package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/browse"
	"github.com/vtnguyen/storeboard/internal/app/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderStores(w io.Writer, b *browse.StoreBrowser) {
	rows := b.Rows()
	table := newTable(w)
	if b.SortNearby() {
		fmt.Fprintln(table, "ID\tNAME\tTYPE\tDISTRICT\tACTIVE\tDISTANCE")
		for _, row := range rows {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\n",
				row.ID, row.Name, model.DisplayStoreType(string(row.StoreType)),
				row.District, activeLabel(row.IsActive), distanceLabel(row.DistanceKm))
		}
	} else {
		fmt.Fprintln(table, "ID\tNAME\tTYPE\tDISTRICT\tCITY\tACTIVE")
		for _, row := range rows {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\n",
				row.ID, row.Name, model.DisplayStoreType(string(row.StoreType)),
				row.District, row.City, activeLabel(row.IsActive))
		}
	}
	table.Flush()
	renderFooter(w, len(rows), b.Count(), b.Page(), b.HasNext())
}

func renderItems(w io.Writer, b *browse.ItemBrowser) {
	items := b.Results()
	table := newTable(w)
	fmt.Fprintln(table, "ID\tNAME\tCATEGORY\tBRAND\tBARCODE\tSTORES\tACTIVE")
	for _, item := range items {
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.Category, item.Brand, item.Barcode,
			item.StoreCount, activeLabel(item.IsActive))
	}
	table.Flush()
	renderFooter(w, len(items), b.Count(), b.Page(), b.HasNext())
}

func renderInventory(w io.Writer, b *browse.InventoryBrowser) {
	records := b.Results()
	table := newTable(w)
	fmt.Fprintln(table, "ID\tSTORE\tITEM\tCATEGORY\tAVAILABLE")
	for _, record := range records {
		available := "no"
		if record.IsAvailable {
			available = "yes"
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n",
			record.ID, record.StoreName, record.ItemName, record.ItemCategory, available)
	}
	table.Flush()
	renderFooter(w, len(records), b.Count(), b.Page(), b.HasNext())
}

func renderAnalytics(w io.Writer, s *model.AnalyticsSnapshot, fetchedAt time.Time) {
	fmt.Fprintf(w, "Analytics snapshot (fetched %s)\n\n", fetchedAt.Format(time.Kitchen))

	table := newTable(w)
	fmt.Fprintf(table, "Stores\t%d total, %d active, %d inactive\n",
		s.TotalStores, s.ActiveStores, s.InactiveStores)
	fmt.Fprintf(table, "Districts\t%d (avg %.1f stores each)\n",
		s.TotalDistricts, s.AverageStoresPerDistrict)
	fmt.Fprintf(table, "Items\t%d in catalog\n", s.TotalItems)
	fmt.Fprintf(table, "Inventory\t%d records, %.0f%% available\n",
		s.TotalInventoryItems, s.InventoryAvailabilityRate*100)
	table.Flush()

	if len(s.TopDistricts) > 0 {
		fmt.Fprintln(w, "\nTop districts:")
		table = newTable(w)
		for _, d := range s.TopDistricts {
			fmt.Fprintf(table, "  %s\t%d stores\n", d.Name, d.Count)
		}
		table.Flush()
	}

	if len(s.TopStoreTypes) > 0 {
		fmt.Fprintln(w, "\nStore types:")
		table = newTable(w)
		for _, t := range s.TopStoreTypes {
			fmt.Fprintf(table, "  %s\t%d\t%.1f%%\n", model.DisplayStoreType(t.Type), t.Count, t.Percentage)
		}
		table.Flush()
	}

	if len(s.InventoryByCategory) > 0 {
		categories := make([]string, 0, len(s.InventoryByCategory))
		for category := range s.InventoryByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		fmt.Fprintln(w, "\nInventory by category:")
		table = newTable(w)
		for _, category := range categories {
			fmt.Fprintf(table, "  %s\t%d\n", category, s.InventoryByCategory[category])
		}
		table.Flush()
	}
}

func renderFooter(w io.Writer, shown int, total int64, page int, hasNext bool) {
	more := ""
	if hasNext {
		more = ", more available"
	}
	fmt.Fprintf(w, "\n%d of %d results (page %d%s)\n", shown, total, page, more)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func distanceLabel(km *float64) string {
	if km == nil {
		return "-"
	}
	return strconv.FormatFloat(*km, 'f', 1, 64) + " km"
}

func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

// noticeBoard holds one transient message that expires after ttl, for the
// watch view.
type noticeBoard struct {
	mu    sync.Mutex
	ttl   time.Duration
	msg   string
	until time.Time
}

func newNoticeBoard(ttl time.Duration) *noticeBoard {
	return &noticeBoard{ttl: ttl}
}

func (n *noticeBoard) Post(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg = msg
	n.until = time.Now().Add(n.ttl)
}

func (n *noticeBoard) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.msg == "" || time.Now().After(n.until) {
		return "", false
	}
	return n.msg, true
}

const maxExportPages = 100

func fetchAllStores(ctx context.Context, client *api.Client, limit int) ([]model.Store, error) {
	var all []model.Store
	for page := 1; page <= maxExportPages; page++ {
		result, err := client.ListStores(ctx, api.StoreListParams{Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Results...)
		if !result.HasNext() {
			break
		}
	}
	return all, nil
}

func fetchAllInventory(ctx context.Context, client *api.Client, limit int) ([]model.Inventory, error) {
	var all []model.Inventory
	for page := 1; page <= maxExportPages; page++ {
		result, err := client.ListInventory(ctx, api.InventoryListParams{Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Results...)
		if !result.HasNext() {
			break
		}
	}
	return all, nil
}
