package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cmdbhub/cmdb-analyzer/pkg/config"
	"github.com/cmdbhub/cmdb-analyzer/pkg/logging"
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
	"github.com/cmdbhub/cmdb-analyzer/pkg/report"
	"github.com/cmdbhub/cmdb-analyzer/pkg/services/importer"
	"github.com/cmdbhub/cmdb-analyzer/pkg/services/validation"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Workbooks may also come as plain arguments.
	workbooks := append([]string{}, cfg.Import.Workbooks...)
	workbooks = append(workbooks, os.Args[1:]...)
	if len(workbooks) == 0 {
		logger.Fatal("no workbooks to analyze; pass paths as arguments or set CMDB_WORKBOOKS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := models.NewReferenceCatalog()
	if cfg.Catalog.Path != "" {
		catalog, err = importer.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			logger.Fatal("failed to load reference catalog", zap.Error(err))
		}
		logger.Info("reference catalog loaded", zap.String("path", cfg.Catalog.Path))
	} else {
		logger.Warn("no reference catalog configured; catalog-driven rules will stay silent")
	}

	dataset := models.NewCMDBDataset()
	wbImporter := importer.NewWorkbookImporter(logger)
	for _, path := range workbooks {
		if err := wbImporter.ImportFile(ctx, path, dataset); err != nil {
			logger.Fatal("workbook import failed", zap.String("path", path), zap.Error(err))
		}
	}
	logger.Info("import complete", zap.String("dataset", dataset.String()))

	engine := validation.NewEngine(logger,
		validation.WithMaxConcurrentRules(cfg.Validation.MaxConcurrentRules),
		validation.WithDependencyTypes(cfg.Validation.DependencyTypes...),
	)
	findings, err := engine.Validate(ctx, dataset, catalog)
	if err != nil {
		logger.Fatal("validation failed", zap.Error(err))
	}

	fmt.Print(report.Summary(findings))

	if cfg.Report.JSONPath != "" {
		out, err := os.Create(cfg.Report.JSONPath)
		if err != nil {
			logger.Fatal("failed to create report file", zap.Error(err))
		}
		if err := report.WriteJSON(out, findings); err != nil {
			_ = out.Close()
			logger.Fatal("failed to write report file", zap.Error(err))
		}
		if err := out.Close(); err != nil {
			logger.Fatal("failed to close report file", zap.Error(err))
		}
		logger.Info("JSON report written", zap.String("path", cfg.Report.JSONPath))
	}

	if report.ErrorCount(findings) > 0 {
		os.Exit(1)
	}
}
