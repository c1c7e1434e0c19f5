// Package main provides the BookTrack command-line reading tracker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/booktrackapp/booktrack/internal/config"
	"github.com/booktrackapp/booktrack/internal/di"
	"github.com/booktrackapp/booktrack/internal/di/providers"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/store"
)

const dateFormat = "2006-01-02"

var (
	flagEnvironment string
	flagLogLevel    string
	flagDataPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "booktrack",
		Short:         "BookTrack - personal reading tracker",
		Long:          "Track your books, reading progress, notes, goals, and achievements.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagEnvironment, "env", "", "environment (development, production)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "data directory (default: ~/.booktrack)")

	rootCmd.AddCommand(
		addCmd(),
		listCmd(),
		showCmd(),
		updateCmd(),
		rmCmd(),
		favoriteCmd(),
		noteCmd(),
		progressCmd(),
		finishCmd(),
		goalsCmd(),
		achievementsCmd(),
		statsCmd(),
		searchCmd(),
		settingsCmd(),
		watchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the bootstrapped container for one command invocation.
type app struct {
	injector *do.RootScope
	store    *store.Store
}

// initApp boots the DI container and returns the app plus a cleanup that
// flushes pending writes and closes everything in reverse order.
func initApp() (*app, func(), error) {
	overrides := config.Overrides{
		Environment: flagEnvironment,
		LogLevel:    flagLogLevel,
		DataPath:    flagDataPath,
	}

	injector := di.NewContainer(overrides)
	if err := di.Bootstrap(injector); err != nil {
		return nil, nil, err
	}

	storeHandle := do.MustInvoke[*providers.StoreHandle](injector)

	cleanup := func() {
		_ = injector.Shutdown()
	}

	return &app{injector: injector, store: storeHandle.Store}, cleanup, nil
}

func printBookShort(b domain.Book) {
	fmt.Printf("[%s] %s", b.ID, b.Title)
	if b.Author != nil {
		fmt.Printf(" by %s", *b.Author)
	}
	fmt.Printf(" (%s", b.Status)
	if b.Status == domain.StatusReading && b.ProgressPercent() > 0 {
		fmt.Printf(" %d%%", b.ProgressPercent())
	}
	fmt.Print(")")
	if b.Rating != nil {
		fmt.Printf(" %d/10", *b.Rating)
	}
	if b.IsFavorite {
		fmt.Print(" *")
	}
	fmt.Println()
}

func printBookFull(b domain.Book) {
	fmt.Printf("ID:           %s\n", b.ID)
	fmt.Printf("Title:        %s\n", b.Title)
	if b.Author != nil {
		fmt.Printf("Author:       %s\n", *b.Author)
	}
	if b.Genre != nil {
		fmt.Printf("Genre:        %s\n", *b.Genre)
	}
	fmt.Printf("Status:       %s\n", b.Status)
	if b.TotalPages != nil {
		fmt.Printf("Pages:        %d\n", *b.TotalPages)
	}
	if b.CurrentPage != nil {
		fmt.Printf("Current page: %d (%d%%)\n", *b.CurrentPage, b.ProgressPercent())
	}
	if b.Rating != nil {
		fmt.Printf("Rating:       %d/10\n", *b.Rating)
	}
	fmt.Printf("Favorite:     %t\n", b.IsFavorite)
	if b.StartDate != nil {
		fmt.Printf("Started:      %s\n", b.StartDate.Format(dateFormat))
	}
	if b.EndDate != nil {
		fmt.Printf("Finished:     %s\n", b.EndDate.Format(dateFormat))
	}
	fmt.Printf("Added:        %s\n", b.CreatedAt.Format(dateFormat))
	if len(b.Notes) > 0 {
		fmt.Printf("Notes (%d):\n", len(b.Notes))
		for _, n := range b.Notes {
			fmt.Printf("  [%s] %s\n", n.CreatedAt.Format(dateFormat), n.Text)
		}
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream state snapshots as they are published",
		Long: `Subscribe to the snapshot stream and print a summary line every time
state changes. Mostly useful for debugging alongside another client.
Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			broadcasterHandle := do.MustInvoke[*providers.BroadcasterHandle](a.injector)

			sub := broadcasterHandle.Subscribe()
			defer broadcasterHandle.Unsubscribe(sub.ID)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println("Watching for changes (Ctrl-C to stop)...")
			for {
				select {
				case snap, ok := <-sub.Snapshots:
					if !ok {
						return nil
					}
					unlocked := 0
					for _, ach := range snap.Achievements {
						if ach.IsUnlocked {
							unlocked++
						}
					}
					fmt.Printf("%s  books=%d goals=%d achievements=%d/%d\n",
						time.Now().Format("15:04:05"),
						len(snap.Books), len(snap.Goals), unlocked, len(snap.Achievements))
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
