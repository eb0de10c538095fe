package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tabreport/adapters/excel"
	"tabreport/adapters/metrics"
	"tabreport/adapters/postgres"
	"tabreport/adapters/render"
	"tabreport/app"
	"tabreport/domain/report"
	"tabreport/domain/table"
	"tabreport/internal/config"
	"tabreport/internal/errors"
	"tabreport/ports"
	"tabreport/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry := render.DefaultRegistry()
	ctx := context.Background()

	var store ports.ReportStore
	if cfg.Database.URL != "" {
		pgStore, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
	}

	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "run":
		if err := runReport(ctx, cfg, registry, store); err != nil {
			log.Fatalf("Report run failed: %v", err)
		}
	case "serve":
		if store == nil {
			log.Fatal("DATABASE_URL is required to serve stored reports")
		}
		server := ui.NewApp(store, registry)
		log.Fatal(server.Start(ui.Config{Port: cfg.Server.Port}))
	default:
		log.Fatalf("Unknown mode %q, expected run or serve", mode)
	}
}

// runReport loads the configured datasets, executes the default presets,
// exports the tabular view to xlsx, prints the structured view, and saves
// the payload when a store is configured.
func runReport(ctx context.Context, cfg *config.Config, registry *report.Registry, store ports.ReportStore) error {
	current, reference, err := loadDatasets(ctx, cfg)
	if err != nil {
		return err
	}

	opts := report.Options{AggData: cfg.Report.AggData}
	specs := []report.MetricSpec{
		metrics.RegressionPreset{Opts: opts},
		metrics.DataQualityPreset{Opts: opts},
	}

	r := app.New(registry, specs)
	if err := r.Run(reference, current, nil); err != nil {
		return err
	}

	structured, err := r.AsStructured(report.StructuredOptions{IncludeRender: false})
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(structured, "", "  ")
	if err != nil {
		return err
	}
	os.Stdout.Write(append(encoded, '\n'))

	if cfg.Data.OutputFile != "" {
		tables, err := r.Tables()
		if err != nil {
			return err
		}
		if err := excel.NewWriter().WriteTables(cfg.Data.OutputFile, tables); err != nil {
			return err
		}
		log.Printf("Wrote tabular report to %s", cfg.Data.OutputFile)
	}

	if store != nil {
		payload, err := r.ToPayload()
		if err != nil {
			return err
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		stored := ports.StoredReport{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Metadata:  r.Metadata,
			Payload:   raw,
		}
		if err := store.Save(ctx, stored); err != nil {
			return err
		}
		log.Printf("Saved report %s", r.ID)
	}
	return nil
}

// loadDatasets reads the current and reference files concurrently. The
// reference file is optional.
func loadDatasets(ctx context.Context, cfg *config.Config) (*table.Table, *table.Table, error) {
	if cfg.Data.CurrentFile == "" {
		return nil, nil, errors.ConfigInvalid("CURRENT_FILE is required in run mode")
	}
	reader := excel.NewReader()

	var current, reference *table.Table
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := reader.ReadTable(cfg.Data.CurrentFile)
		if err != nil {
			return err
		}
		current = t
		return nil
	})
	if cfg.Data.ReferenceFile != "" {
		g.Go(func() error {
			t, err := reader.ReadTable(cfg.Data.ReferenceFile)
			if err != nil {
				return err
			}
			reference = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, reference, nil
}
