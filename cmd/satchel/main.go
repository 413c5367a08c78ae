// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/satchel/config"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/domain"
	"github.com/poiesic/satchel/livequery"
	"github.com/poiesic/satchel/query"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "satchel",
		Usage: "Local reactive entity store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"SATCHEL_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "collections",
				Usage:  "List the registered collection names",
				Action: collectionsCommand,
			},
			{
				Name:   "query",
				Usage:  "Run a query against a collection and print the matching page",
				Action: queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Filter as field:op:value (op: eq, neq, contains, gte, lte, in)",
					},
					&cli.StringFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Keyword matched against the collection's searchable fields",
					},
					&cli.StringFlag{
						Name:    "sort",
						Aliases: []string{"s"},
						Usage:   "Sort as field:asc or field:desc",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number, starting at 1",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Page size (0 uses SATCHEL_DEFAULT_PAGE_SIZE)",
					},
				},
			},
			{
				Name:   "save",
				Usage:  "Create or replace one entity from JSON",
				Action: saveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "json",
						Aliases:  []string{"j"},
						Usage:    "Entity as a JSON object (an empty or missing id creates)",
						Required: true,
					},
				},
			},
			{
				Name:   "patch",
				Usage:  "Update named fields of one entity",
				Action: patchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Entity id",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "set",
						Usage: "Assignment as field=value",
					},
					&cli.StringSliceFlag{
						Name:  "unset",
						Usage: "Field to clear to its zero value",
					},
				},
			},
			{
				Name:   "rm",
				Usage:  "Delete one entity by id",
				Action: rmCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Entity id",
						Required: true,
					},
				},
			},
			{
				Name:   "clear",
				Usage:  "Remove every entity in a collection",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Run a live query and print every settled snapshot",
				Action: watchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Filter as field:op:value (op: eq, neq, contains, gte, lte, in)",
					},
					&cli.StringFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Keyword matched against the collection's searchable fields",
					},
					&cli.StringFlag{
						Name:    "sort",
						Aliases: []string{"s"},
						Usage:   "Sort as field:asc or field:desc",
					},
					&cli.DurationFlag{
						Name:  "seed-every",
						Usage: "Save a sample entity on this interval while watching (0 disables)",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Save sample entities concurrently",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection name (see the collections command)",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of sample entities to save",
						Value:   25,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent save workers",
						Value: 4,
					},
				},
			},
		},
	}
}

func collectionsCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	for _, name := range services.Names() {
		fmt.Println(name)
	}

	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}

	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	q.Page = query.PageRequest{Page: c.Int("page"), Size: c.Int("size")}
	if q.Page.Size < 1 {
		q.Page.Size = cfg.DefaultPageSize
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	page, err := handle.FindAll(ctx, q)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	return printJSON(page)
}

func saveCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}
	payload := c.String("json")
	if payload == "" {
		return fmt.Errorf("json is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	saved, err := handle.SaveJSON(ctx, []byte(payload))
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	return printJSON(saved)
}

func patchCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("id is required")
	}

	patch := core.NewPatch()
	for _, spec := range c.StringSlice("set") {
		field, raw, found := strings.Cut(spec, "=")
		if !found || field == "" {
			return fmt.Errorf("invalid set %q: want field=value", spec)
		}
		patch.Set(field, parseValue(raw))
	}
	for _, field := range c.StringSlice("unset") {
		patch.Unset(field)
	}
	if patch.Len() == 0 {
		return fmt.Errorf("patch needs at least one --set or --unset")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	updated, err := handle.PatchByID(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("patch failed: %w", err)
	}

	return printJSON(updated)
}

func rmCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	if err := handle.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Deleted %s from %s\n", id, name)
	return nil
}

func clearCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	if err := handle.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Cleared %s\n", name)
	return nil
}

func watchCommand(c *cli.Context) error {
	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}

	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view, err := livequery.New(handle, func(ctx context.Context) (any, error) {
		return handle.FindAll(ctx, q)
	})
	if err != nil {
		return fmt.Errorf("failed to start live query: %w", err)
	}
	defer view.Close()

	if every := c.Duration("seed-every"); every > 0 {
		go sampleWriter(ctx, handle, name, every)
	}

	fmt.Fprintf(os.Stderr, "Watching %s, interrupt to stop\n", name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-view.Updates():
			if !ok {
				return nil
			}
			switch snap.Status {
			case livequery.StatusLoading:
			case livequery.StatusError:
				fmt.Fprintf(os.Stderr, "query error: %v\n", snap.Err)
			default:
				if err := printJSON(snap.Data); err != nil {
					return err
				}
			}
		}
	}
}

// sampleWriter saves a fresh sample entity on every tick until ctx is done.
// Changes land in the watched collection from this same process, so they
// reach the live view through its subscription.
func sampleWriter(ctx context.Context, handle domain.Handle, collection string, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			payload, err := sampleJSON(collection, i)
			if err != nil {
				slog.Error("error building sample entity", "err", err)
				return
			}
			if _, err := handle.SaveJSON(ctx, payload); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Error("error saving sample entity", "err", err)
			}
		}
	}
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	name := c.String("collection")
	if name == "" {
		return fmt.Errorf("collection is required")
	}
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("count must be greater than 0")
	}
	workers := c.Int("workers")
	if workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	services, err := domain.New(db)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	handle, err := services.Resolve(name)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < count; i++ {
		g.Go(func() error {
			payload, err := sampleJSON(name, i)
			if err != nil {
				return err
			}
			if _, err := handle.SaveJSON(gCtx, payload); err != nil {
				return fmt.Errorf("failed to save entity %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Seeded %d entities into %s\n", count, name)
	return nil
}

// parseQuery builds the filter, keyword and sort stages from flags. Paging
// is left to callers that page.
func parseQuery(c *cli.Context) (query.Query, error) {
	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return query.Query{}, err
	}

	sort, err := parseSort(c.String("sort"))
	if err != nil {
		return query.Query{}, err
	}

	return query.Query{
		Filters: filters,
		Keyword: c.String("keyword"),
		Sort:    sort,
	}, nil
}

func parseFilters(specs []string) ([]query.Criterion, error) {
	criteria := make([]query.Criterion, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid filter %q: want field:op:value", spec)
		}
		field, raw := parts[0], parts[2]

		switch query.Op(strings.ToLower(parts[1])) {
		case query.OpEq:
			criteria = append(criteria, query.Eq(field, parseValue(raw)))
		case query.OpNeq:
			criteria = append(criteria, query.Neq(field, parseValue(raw)))
		case query.OpContains:
			criteria = append(criteria, query.Contains(field, parseValue(raw)))
		case query.OpGte:
			criteria = append(criteria, query.Gte(field, parseValue(raw)))
		case query.OpLte:
			criteria = append(criteria, query.Lte(field, parseValue(raw)))
		case query.OpIn:
			criteria = append(criteria, query.In(field, parseValues(raw)...))
		default:
			return nil, fmt.Errorf("invalid filter operator %q: must be one of eq, neq, contains, gte, lte, in", parts[1])
		}
	}
	return criteria, nil
}

// parseValue coerces a flag value the way JSON decoding would: true, false
// and numbers become typed values, anything else stays a string.
func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// parseValues splits a comma-separated list for the in operator.
func parseValues(raw string) []any {
	parts := strings.Split(raw, ",")
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		values = append(values, parseValue(strings.TrimSpace(part)))
	}
	return values
}

// parseSort reads field, field:asc or field:desc.
func parseSort(spec string) (query.Sort, error) {
	if spec == "" {
		return query.Sort{}, nil
	}

	field, order, found := strings.Cut(spec, ":")
	if field == "" {
		return query.Sort{}, fmt.Errorf("invalid sort %q: want field:asc or field:desc", spec)
	}
	if !found {
		return query.Asc(field), nil
	}

	switch query.Order(strings.ToLower(order)) {
	case query.OrderAsc:
		return query.Asc(field), nil
	case query.OrderDesc:
		return query.Desc(field), nil
	}
	return query.Sort{}, fmt.Errorf("invalid sort order %q: must be asc or desc", order)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// Sample values the seed command and the watch command's sample writer
// draw from.
var (
	sampleTitles = []string{
		"Standup notes",
		"Release planning",
		"Support triage",
		"Architecture review",
		"Onboarding questions",
		"Budget check-in",
		"Roadmap draft",
		"Incident follow-up",
	}
	sampleMessages = []string{
		"Sounds good, shipping it today.",
		"Can you take a look at the failing build?",
		"Scheduled for Thursday.",
		"The customer confirmed the fix.",
		"Let's pick this up tomorrow.",
		"Notes are in the shared folder.",
	}
	sampleNames = []string{
		"Amy Chen",
		"Bob Ferris",
		"Ines Aguilar",
		"Otto Brandt",
		"Priya Nair",
		"Samuel Ortiz",
		"Dana Whitfield",
		"Kofi Mensah",
		"Lena Vogel",
		"Marco Rossi",
	}
	sampleTags      = []string{"design", "engineering", "sales", "support"}
	sampleCustomers = []string{"Acme Corp", "Globex", "Initech", "Umbrella Ltd", "Stark Industries"}
	sampleStatuses  = []string{"draft", "sent", "paid", "overdue"}
)

// sampleJSON builds the i-th sample entity for a collection.
func sampleJSON(collection string, i int) ([]byte, error) {
	switch collection {
	case "chat_sessions":
		return json.Marshal(map[string]any{
			"title":        fmt.Sprintf("%s %d", sampleTitles[i%len(sampleTitles)], i+1),
			"lastMessage":  sampleMessages[i%len(sampleMessages)],
			"unreadCount":  i % 3,
			"lastActiveAt": time.Now().UnixMilli(),
		})
	case "contacts":
		name := sampleNames[i%len(sampleNames)]
		if i >= len(sampleNames) {
			name = fmt.Sprintf("%s %d", name, i/len(sampleNames)+1)
		}
		return json.Marshal(map[string]any{
			"name":     name,
			"email":    fmt.Sprintf("contact%d@example.com", i+1),
			"tags":     []string{sampleTags[i%len(sampleTags)]},
			"favorite": i%4 == 0,
		})
	case "invoices":
		return json.Marshal(map[string]any{
			"number":      fmt.Sprintf("INV-%04d", i+1),
			"customer":    sampleCustomers[i%len(sampleCustomers)],
			"status":      sampleStatuses[i%len(sampleStatuses)],
			"amountCents": (i + 1) * 2500,
			"dueAt":       time.Now().AddDate(0, 0, i%30).UnixMilli(),
		})
	}
	return nil, fmt.Errorf("no sample data for collection %q", collection)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
