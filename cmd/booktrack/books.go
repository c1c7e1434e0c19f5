package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/errors"
	"github.com/booktrackapp/booktrack/internal/id"
	"github.com/booktrackapp/booktrack/internal/validation"
)

func addCmd() *cobra.Command {
	var author, genre, status, start string
	var totalPages, currentPage, rating int

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new book to your library",
		Long: `Add a book. Only the title is required; everything else is optional.

Examples:
  booktrack add "The Martian" -a "Andy Weir" -p 369
  booktrack add "Dune" --status reading --page 120 --start 2026-08-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			input := validation.AddBookInput{
				Title:  joinArgs(args),
				Status: domain.ReadingStatus(status),
			}
			if author != "" {
				input.Author = &author
			}
			if genre != "" {
				input.Genre = &genre
			}
			if cmd.Flags().Changed("pages") {
				input.TotalPages = &totalPages
			}
			if cmd.Flags().Changed("page") {
				input.CurrentPage = &currentPage
			}
			if cmd.Flags().Changed("rating") {
				input.Rating = &rating
			}
			if start != "" {
				t, err := time.Parse(dateFormat, start)
				if err != nil {
					return errors.Validation(fmt.Sprintf("invalid start date %q (use YYYY-MM-DD)", start))
				}
				input.StartDate = &t
			}

			if err := validation.New().Validate(input); err != nil {
				return err
			}

			book := input.Book(id.MustGenerate("book"), time.Now())
			a.store.AddBook(book)

			fmt.Printf("Added: %s (ID: %s)\n", book.Title, book.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "book author")
	cmd.Flags().IntVarP(&totalPages, "pages", "p", 0, "total page count")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "genre")
	cmd.Flags().StringVarP(&status, "status", "s", "", "reading status (planning, reading, finished)")
	cmd.Flags().IntVar(&currentPage, "page", 0, "current page")
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "rating (1-10)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")

	return cmd
}

func listCmd() *cobra.Command {
	var status string
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books in your library, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			books := a.store.Books()

			var shown int
			for _, b := range books {
				if status != "" && b.Status != domain.ReadingStatus(status) {
					continue
				}
				if favorites && !b.IsFavorite {
					continue
				}
				printBookShort(b)
				shown++
			}

			if shown == 0 {
				fmt.Println("No books found.")
				return nil
			}
			fmt.Printf("\nTotal: %d book(s)\n", shown)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (planning, reading, finished)")
	cmd.Flags().BoolVarP(&favorites, "favorites", "f", false, "only favorites")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [book-id]",
		Short: "Show details of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			b, ok := a.store.GetBook(args[0])
			if !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}

			printBookFull(b)
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	var title, author, genre, status, start, end string
	var totalPages int

	cmd := &cobra.Command{
		Use:   "update [book-id]",
		Short: "Update a book's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			b, ok := a.store.GetBook(args[0])
			if !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}

			if cmd.Flags().Changed("title") {
				b.Title = title
			}
			if cmd.Flags().Changed("author") {
				b.Author = optionalString(author)
			}
			if cmd.Flags().Changed("genre") {
				b.Genre = optionalString(genre)
			}
			if cmd.Flags().Changed("pages") {
				b.TotalPages = &totalPages
			}
			if cmd.Flags().Changed("status") {
				s := domain.ReadingStatus(status)
				if !s.Valid() {
					return errors.Validation(fmt.Sprintf("invalid status %q (use planning, reading, or finished)", status))
				}
				b.Status = s
			}
			if cmd.Flags().Changed("start") {
				t, err := parseDateFlag(start)
				if err != nil {
					return err
				}
				b.StartDate = t
			}
			if cmd.Flags().Changed("end") {
				t, err := parseDateFlag(end)
				if err != nil {
					return err
				}
				b.EndDate = t
			}

			a.store.UpdateBook(b)
			fmt.Printf("Updated: %s\n", b.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "new author (empty clears)")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "new genre (empty clears)")
	cmd.Flags().IntVarP(&totalPages, "pages", "p", 0, "new total page count")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, empty clears)")

	return cmd
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [book-id...]",
		Short: "Remove books from your library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			before := len(a.store.Books())
			a.store.DeleteBooks(args)
			removed := before - len(a.store.Books())

			fmt.Printf("Removed %d book(s)\n", removed)
			return nil
		},
	}
}

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite [book-id]",
		Short: "Toggle a book's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			a.store.ToggleFavorite(args[0])

			b, ok := a.store.GetBook(args[0])
			if !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}
			if b.IsFavorite {
				fmt.Printf("Favorited: %s\n", b.Title)
			} else {
				fmt.Printf("Unfavorited: %s\n", b.Title)
			}
			return nil
		},
	}
}

func noteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note [book-id] [text]",
		Short: "Add a note to a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if _, ok := a.store.GetBook(args[0]); !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}

			a.store.AddNote(args[0], joinArgs(args[1:]))
			fmt.Println("Note added.")
			return nil
		},
	}
}

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [book-id] [page]",
		Short: "Record the current page of a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			page, err := strconv.Atoi(args[1])
			if err != nil || page < 0 {
				return errors.Validation(fmt.Sprintf("invalid page number: %s", args[1]))
			}

			b, ok := a.store.GetBook(args[0])
			if !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}

			a.store.SetProgress(args[0], page)

			b, _ = a.store.GetBook(args[0])
			fmt.Printf("%s: page %d", b.Title, page)
			if pct := b.ProgressPercent(); pct > 0 {
				fmt.Printf(" (%d%%)", pct)
			}
			fmt.Println()
			return nil
		},
	}
}

func finishCmd() *cobra.Command {
	var rating int

	cmd := &cobra.Command{
		Use:   "finish [book-id]",
		Short: "Mark a book as finished",
		Long: `Mark a book finished, stamping the end date and updating goal progress.
An optional rating (1-10) can be recorded at the same time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			b, ok := a.store.GetBook(args[0])
			if !ok {
				return errors.NotFound(fmt.Sprintf("book %s not found", args[0]))
			}

			var ratingPtr *int
			if cmd.Flags().Changed("rating") {
				if rating < 1 || rating > 10 {
					return errors.Validation("rating must be between 1 and 10")
				}
				ratingPtr = &rating
			}

			a.store.FinishBook(args[0], ratingPtr)

			fmt.Printf("Finished: %s", b.Title)
			if ratingPtr != nil {
				fmt.Printf(" (%d/10)", *ratingPtr)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "rating (1-10)")
	return cmd
}

// optionalString maps an empty flag value to nil so the field is cleared.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty clears the field.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, errors.Validation(fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", s))
	}
	return &t, nil
}
