package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/booktrackapp/booktrack/internal/di/providers"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/errors"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			books := a.store.Books()
			if len(books) == 0 {
				fmt.Println("No books in your library yet.")
				return nil
			}

			var planning, reading, finished int
			for _, b := range books {
				switch b.Status {
				case domain.StatusPlanning:
					planning++
				case domain.StatusReading:
					reading++
				case domain.StatusFinished:
					finished++
				}
			}

			fmt.Println("=== Library Stats ===")
			fmt.Printf("Total books: %d\n", len(books))
			fmt.Println()

			fmt.Println("By status:")
			fmt.Printf("  Planning: %d\n", planning)
			fmt.Printf("  Reading:  %d\n", reading)
			fmt.Printf("  Finished: %d\n", finished)
			fmt.Println()

			fmt.Printf("Current pages (reading + finished): %d\n", a.store.TotalReadPages())
			fmt.Printf("Pages read overall:                 %d\n", a.store.TotalPagesRead())
			if avg := a.store.AveragePagesPerBook(); avg > 0 {
				fmt.Printf("Average book length:                %d pages\n", avg)
			}
			if avg := a.store.AverageRating(); avg > 0 {
				fmt.Printf("Average rating:                     %.1f/10\n", avg)
			}

			if genres := a.store.GenreBreakdown(); len(genres) > 0 {
				fmt.Println("\nGenres:")
				for _, g := range genres {
					fmt.Printf("  %s: %d\n", g.Genre, g.Count)
				}
			}

			if recent := a.store.RecentlyFinished(5); len(recent) > 0 {
				fmt.Println("\nRecently finished:")
				for _, b := range recent {
					printBookShort(b)
				}
			}

			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Full-text search over titles, authors, genres, and notes",
		Long: `Search the library index. Terms match exactly and with small typos.

Examples:
  booktrack search martian
  booktrack search "andy weir"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			indexHandle := do.MustInvoke[*providers.SearchIndexHandle](a.injector)
			if indexHandle.Index == nil {
				return errors.Validation("search is disabled (set BOOKTRACK_SEARCH_ENABLED=true)")
			}

			result, err := indexHandle.Search(joinArgs(args), limit)
			if err != nil {
				return err
			}

			if len(result.Hits) == 0 {
				fmt.Println("No matching books found.")
				return nil
			}

			for _, hit := range result.Hits {
				fmt.Printf("[%.2f] %s", hit.Score, hit.Title)
				if hit.Author != "" {
					fmt.Printf(" by %s", hit.Author)
				}
				fmt.Printf(" (%s)\n", hit.Status)
			}
			fmt.Printf("\n%d hit(s) in %dms\n", result.Total, result.TookMs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "max results to show")
	return cmd
}
