// Command dupes browses the duplicate files reported by fdupes or jdupes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/process"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/core/services"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const logFileName = "dupes.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dataDir, err := file.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupes: %v\n", err)
		return err
	}

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupes: %v\n", err)
		return err
	}
	logger.SetVerbose(settings.Verbose)

	var historyStore driven.HistoryStore
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("history unavailable, keeping it in memory: %v", err)
		historyStore = memory.NewHistoryStore()
	} else {
		defer store.Close()
		historyStore = store.HistoryStore()
	}
	historyService := services.NewHistoryService(historyStore, settings.History)

	runner := process.NewRunner().WithEnv(process.ListingEnv...)
	dirWatcher := watcher.New()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings: settingsService,
		History:  historyService,
		Actions:  services.NewEntryActionService(),
		NewSession: func(sink driven.ListingSink) driving.SearchSession {
			return services.NewSearchSession(*settings, runner, sink, historyService, dirWatcher)
		},
		LogFile: filepath.Join(dataDir, logFileName),
	})

	logger.Debug("config %s, program %s", configStore.Path(), settings.Program)
	return cli.Execute(ctx)
}
