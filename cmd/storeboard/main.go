package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vtnguyen/storeboard/config"
	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/browse"
	"github.com/vtnguyen/storeboard/internal/app/session"
	"github.com/vtnguyen/storeboard/internal/export"
	"github.com/vtnguyen/storeboard/internal/scheduler"
	"github.com/vtnguyen/storeboard/pkg/geo"
	"github.com/vtnguyen/storeboard/pkg/logger"
)

const usageText = `Usage: storeboard <command> [subcommand] [flags]

Commands:
  stores      browse and filter stores (stores create|edit to manage)
  items       browse the item catalog (items create|edit|delete)
  inventory   browse inventory records (inventory create|edit|delete)
  analytics   show the analytics snapshot (-watch to keep it fresh)
  export      write an xlsx report of stores and inventory
  login       authenticate and persist the session
  logout      drop the persisted session
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      os.Stderr,
		EnableColor: true,
	})

	sess, err := session.Open(cfg.Session.FilePath)
	if err != nil {
		logger.Fatal("Failed to open session", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:     cfg.API.BaseURL,
		AuthBaseURL: cfg.API.AuthBaseURL,
		Timeout:     cfg.API.Timeout,
		Tokens:      sess,
		Logger:      logger.Get().Zerolog(),
	})
	if err != nil {
		logger.Fatal("Failed to build API client", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, client: client, session: sess, in: os.Stdin, out: os.Stdout}

	switch os.Args[1] {
	case "stores":
		err = app.runStores(ctx, os.Args[2:])
	case "items":
		err = app.runItems(ctx, os.Args[2:])
	case "inventory":
		err = app.runInventory(ctx, os.Args[2:])
	case "analytics":
		err = app.runAnalytics(ctx, os.Args[2:])
	case "export":
		err = app.runExport(ctx, os.Args[2:])
	case "login":
		err = app.runLogin(ctx, os.Args[2:])
	case "logout":
		err = app.runLogout()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Session
	in      io.Reader
	out     io.Writer
}

func (a *app) locator() *geo.Locator {
	return geo.NewLocator(geo.EnvProvider{}, a.cfg.Geo.LocateTimeout, a.cfg.Geo.PositionMaxAge)
}

func (a *app) runStores(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "create":
			return a.runStoreCreate(ctx, args[1:])
		case "edit":
			return a.runStoreEdit(ctx, args[1:])
		}
	}

	fs := flag.NewFlagSet("stores", flag.ExitOnError)
	search := fs.String("search", "", "free-text search over name and address")
	district := fs.String("district", "", "district filter")
	storeType := fs.String("type", "", "store type filter (7-eleven, gs25, circle-k, ...)")
	active := fs.String("active", "", "status filter: true, false or empty for both")
	item := fs.String("item", "", "only stores stocking this inventory item")
	nearby := fs.Bool("nearby", false, "sort by distance from the current position")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	activeFilter, err := triState(*active)
	if err != nil {
		return err
	}

	pageLimit := *limit
	if pageLimit <= 0 {
		pageLimit = a.cfg.API.PageLimit
	}

	b := browse.NewStoreBrowser(a.client, a.locator(), pageLimit)
	b.SetFilters(browse.StoreFilters{
		Search:        *search,
		District:      *district,
		StoreType:     *storeType,
		IsActive:      activeFilter,
		AvailableItem: *item,
	})

	if *nearby {
		if err := b.ToggleNearby(ctx, true); err != nil {
			return locationError(err)
		}
	} else if err := b.Load(ctx); err != nil {
		return err
	}
	if err := skipToPage(ctx, b.NextPage, b.Page, *page); err != nil {
		return err
	}

	renderStores(a.out, b)
	return nil
}

func (a *app) runItems(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "create":
			return a.runItemCreate(ctx, args[1:])
		case "edit":
			return a.runItemEdit(ctx, args[1:])
		case "delete":
			return a.runItemDelete(ctx, args[1:])
		}
	}

	fs := flag.NewFlagSet("items", flag.ExitOnError)
	search := fs.String("search", "", "free-text search over name, brand and barcode")
	category := fs.String("category", "", "category filter (beverages, snacks, ...)")
	active := fs.String("active", "", "status filter: true, false or empty for both")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	activeFilter, err := triState(*active)
	if err != nil {
		return err
	}

	pageLimit := *limit
	if pageLimit <= 0 {
		pageLimit = a.cfg.API.PageLimit
	}

	b := browse.NewItemBrowser(a.client, pageLimit)
	b.SetFilters(browse.ItemFilters{Search: *search, Category: *category, IsActive: activeFilter})
	if err := b.Load(ctx); err != nil {
		return err
	}
	if err := skipToPage(ctx, b.NextPage, b.Page, *page); err != nil {
		return err
	}

	renderItems(a.out, b)
	return nil
}

func (a *app) runInventory(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "create":
			return a.runInventoryCreate(ctx, args[1:])
		case "edit":
			return a.runInventoryEdit(ctx, args[1:])
		case "delete":
			return a.runInventoryDelete(ctx, args[1:])
		}
	}

	fs := flag.NewFlagSet("inventory", flag.ExitOnError)
	item := fs.String("item", "", "item name filter")
	category := fs.String("category", "", "category filter")
	available := fs.String("available", "", "availability filter: true, false or empty for both")
	store := fs.Int64("store", 0, "scope to one store id")
	nearby := fs.Bool("nearby", false, "only inventory around the current position")
	radius := fs.Float64("radius", 3, "nearby radius in km")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	availableFilter, err := triState(*available)
	if err != nil {
		return err
	}
	var storeID *int64
	if *store > 0 {
		storeID = store
	}

	pageLimit := *limit
	if pageLimit <= 0 {
		pageLimit = a.cfg.API.PageLimit
	}

	b := browse.NewInventoryBrowser(a.client, a.locator(), pageLimit)
	b.SetFilters(browse.InventoryFilters{
		ItemName:      *item,
		Category:      *category,
		AvailableOnly: availableFilter,
		StoreID:       storeID,
	})

	if *nearby {
		if err := b.EnableNearby(ctx, *radius); err != nil {
			return locationError(err)
		}
	} else if err := b.Load(ctx); err != nil {
		return err
	}
	if err := skipToPage(ctx, b.NextPage, b.Page, *page); err != nil {
		return err
	}

	renderInventory(a.out, b)
	return nil
}

func (a *app) runAnalytics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	watch := fs.Bool("watch", false, "refresh the snapshot periodically")
	interval := fs.Duration("interval", 30*time.Second, "refresh interval in watch mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*watch {
		snapshot, err := a.client.GetAnalytics(ctx)
		if err != nil {
			return err
		}
		renderAnalytics(a.out, snapshot, time.Now())
		return nil
	}

	sched := scheduler.NewAnalyticsScheduler(a.client, fmt.Sprintf("@every %s", *interval))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	notices := newNoticeBoard(3 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastShown time.Time
	for {
		snapshot, fetchedAt := sched.Snapshot()
		if snapshot != nil {
			if fetchedAt.After(lastShown) {
				if !lastShown.IsZero() {
					notices.Post("snapshot refreshed")
				}
				lastShown = fetchedAt
			}
			clearScreen(a.out)
			renderAnalytics(a.out, snapshot, fetchedAt)
			if msg, ok := notices.Current(); ok {
				fmt.Fprintf(a.out, "\n%s\n", msg)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "storeboard-report.xlsx", "output path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stores, err := fetchAllStores(ctx, a.client, a.cfg.API.PageLimit)
	if err != nil {
		return err
	}
	records, err := fetchAllInventory(ctx, a.client, a.cfg.API.PageLimit)
	if err != nil {
		return err
	}

	report := export.NewReport()
	defer report.Close()
	if err := report.AddStores(stores); err != nil {
		return err
	}
	if err := report.AddInventory(records); err != nil {
		return err
	}

	path, err := report.Save(*out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report written to %s (%d stores, %d inventory records)\n",
		path, len(stores), len(records))
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login requires -email")
	}

	pass := *password
	if pass == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(a.in)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		pass = strings.TrimSpace(line)
	}

	user, err := a.session.Login(ctx, a.client, *email, pass)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func (a *app) runLogout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// triState parses a true/false/empty flag into the tri-state filter shape.
func triState(s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("expected true, false or empty, got %q", s)
	}
}

// skipToPage walks forward to the requested page using the browser's own
// pagination, stopping early when the backend runs out of pages.
func skipToPage(ctx context.Context, next func(context.Context) error, current func() int, target int) error {
	for current() < target {
		before := current()
		if err := next(ctx); err != nil {
			return err
		}
		if current() == before {
			break // no next page
		}
	}
	return nil
}

// locationError translates capture failures into their user-facing
// message; anything else (a fetch failure after a successful capture)
// passes through.
func locationError(err error) error {
	if errors.Is(err, geo.ErrPermissionDenied) ||
		errors.Is(err, geo.ErrPositionUnavailable) ||
		errors.Is(err, geo.ErrTimeout) {
		return errors.New(geo.FailureMessage(err))
	}
	return err
}

// userMessage prefers field detail for validation failures and the
// backend's message for other API failures.
func userMessage(err error) string {
	if detail, ok := validationDetail(err); ok {
		return detail
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
