package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/drillbot/internal/bot"
	"github.com/example/drillbot/internal/config"
	"github.com/example/drillbot/internal/database"
	"github.com/example/drillbot/internal/excel"
	"github.com/example/drillbot/internal/logger"
	"github.com/example/drillbot/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	lg := logger.New(cfg.Log)

	if err := run(cfg, lg); err != nil {
		lg.Error("bot exited with error", "error", err)
		os.Exit(1)
	}
	lg.Info("bot stopped successfully")
}

func run(cfg *config.Config, lg *slog.Logger) error {
	// Cancel on Ctrl+C or SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case sig := <-sigChan:
			lg.Info("received signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewListRepository(db)
	seeded, err := database.SeedBuiltin(ctx, repo)
	if err != nil {
		return err
	}
	if seeded {
		lg.Info("built-in list added", "list", database.BuiltinListName)
	}

	if cfg.Drill.ImportPath != "" {
		importCfg := excel.DefaultImportConfig()
		importCfg.FilePath = cfg.Drill.ImportPath
		importCfg.SheetName = cfg.Drill.ImportSheet

		res, err := excel.ImportLists(ctx, repo, importCfg)
		if err != nil {
			return err
		}
		lg.Info("lists imported",
			"path", cfg.Drill.ImportPath,
			"created", res.ListsCreated,
			"updated", res.ListsUpdated,
			"entries", res.Entries,
			"skipped", res.Skipped,
		)
	}

	sched := scheduler.New(lg)
	sched.Start()
	defer sched.Stop()

	api, err := bot.Connect(cfg.Telegram.Token, cfg.Telegram.Debug)
	if err != nil {
		return err
	}
	lg.Info("authorized on telegram", "account", api.Self.UserName)

	b := bot.New(api, repo, sched, bot.OptionsFromConfig(cfg), lg)
	return b.Run(ctx, bot.Listen(ctx, api, cfg.Telegram.UpdateTimeout))
}
