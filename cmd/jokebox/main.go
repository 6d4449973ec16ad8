package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jokebox/internal/client"
	"jokebox/internal/config"
	"jokebox/internal/favourites"
	"jokebox/internal/lifecycle"
	"jokebox/internal/session"
	"jokebox/internal/ui"
	"jokebox/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "jokebox",
		Short:         "Fetch random jokes and keep the good ones",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(favouritesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jokebox: %v\n", err)
		os.Exit(1)
	}
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir, err := cfg.Storage.ResolveDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file in the storage dir.
	logFile, err := os.OpenFile(filepath.Join(dir, "jokebox.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger.Init(cfg.App.LogLevel, logFile)
	logger.Info("Starting jokebox",
		logger.String("app", cfg.App.Name),
		logger.String("environment", cfg.App.Environment),
	)

	store := favourites.New(dir)
	store.Load()

	sess := session.New(client.New(cfg.Client), store)

	observer := lifecycle.NewObserver()
	observer.OnBackground(func() {
		if err := store.Save(); err != nil {
			logger.Error("Failed to save favourites", logger.Err(err))
			return
		}
		logger.Info("Favourites saved",
			logger.Int("count", store.Len()),
			logger.String("path", store.Path()),
		)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	uiErr := ui.Run(ui.Options{
		Context:   ctx,
		Session:   sess,
		Store:     store,
		Lifecycle: observer,
	})

	// Leaving the screen is the transition into the background phase.
	observer.Notify(lifecycle.PhaseBackground)

	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) && !errors.Is(uiErr, context.Canceled) {
		return uiErr
	}
	logger.Info("Stopped gracefully")
	return nil
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one joke and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.App.LogLevel, os.Stderr)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Client.Timeout+time.Second)
			defer cancel()

			joke, err := client.New(cfg.Client).FetchJoke(ctx)
			if err != nil {
				return err
			}

			fmt.Println(joke.Text)
			return nil
		},
	}
}

func favouritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favourites",
		Short: "Print the saved favourites list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.App.LogLevel, os.Stderr)

			dir, err := cfg.Storage.ResolveDir()
			if err != nil {
				return err
			}

			store := favourites.New(dir)
			store.Load()

			jokes := store.All()
			if len(jokes) == 0 {
				fmt.Println("No favourites saved.")
				return nil
			}
			for i, joke := range jokes {
				fmt.Printf("%d. %s\n", i+1, joke.Text)
			}
			return nil
		},
	}
}
