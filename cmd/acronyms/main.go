// Command acronyms resolves the acronyms defined and used in documents.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/acronyms/internal/acronyms"
	"github.com/custodia-labs/acronyms/internal/adapters/driven/config/file"
	"github.com/custodia-labs/acronyms/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/acronyms/internal/adapters/driving/cli"
	"github.com/custodia-labs/acronyms/internal/connectors/filesystem"
	"github.com/custodia-labs/acronyms/internal/connectors/web"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
	"github.com/custodia-labs/acronyms/internal/core/services"
	"github.com/custodia-labs/acronyms/internal/logger"
	"github.com/custodia-labs/acronyms/internal/normalisers"
	"github.com/custodia-labs/acronyms/internal/normalisers/docx"
	"github.com/custodia-labs/acronyms/internal/normalisers/html"
	"github.com/custodia-labs/acronyms/internal/normalisers/markdown"
	"github.com/custodia-labs/acronyms/internal/normalisers/pdf"
	"github.com/custodia-labs/acronyms/internal/normalisers/plaintext"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()
	logger.Debug("database: %s", store.Path())

	pdfConverter := pdf.New()
	pdfConverter.SetPreferTool(settings.PreferPDFToText)
	if settings.PreferPDFToText {
		if err := pdf.CheckAvailable(); err != nil {
			logger.Debug("%v, using built-in PDF reader", err)
		}
	}

	extractor := normalisers.NewExtractor(
		store.DocumentStore(),
		filesystem.NewFetcher(),
		web.NewFetcher(nil, web.NewRateLimiter(settings.FetchRate)),
	)
	extractor.Register(plaintext.New())
	extractor.Register(pdfConverter)
	extractor.Register(markdown.New())
	extractor.Register(html.New())
	extractor.Register(docx.New())

	acronymService := services.NewAcronymService(
		store.ResultStore(),
		store.AggregateStore(),
		extractor,
		acronyms.NewBuilder(*settings),
		settings.ExtractionTimeout,
	)
	documentService := services.NewDocumentService(store.DocumentStore(), acronymService)
	history := store.RefreshLog()

	cli.Configure(cli.Config{
		Documents: documentService,
		Acronyms:  acronymService,
		Settings:  settingsService,
		History:   history,
		MIMETypes: extractor.SupportedMIMETypes(),
		NewScheduler: func(interval time.Duration) driving.Scheduler {
			return services.NewRefresher(acronymService, history, interval)
		},
		Version: version,
	})

	return cli.Execute()
}
