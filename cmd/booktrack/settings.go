package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/errors"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			s := a.store.Settings()
			fmt.Printf("Display name: %s\n", s.Profile.DisplayName)
			fmt.Printf("Avatar:       %s\n", s.Profile.AvatarSymbol)
			fmt.Printf("Language:     %s\n", s.Language)
			fmt.Printf("Theme:        %s\n", s.Theme)
			fmt.Printf("Text size:    %s\n", s.TextSize)
			return nil
		},
	}

	cmd.AddCommand(settingsSetCmd())
	return cmd
}

func settingsSetCmd() *cobra.Command {
	var language, theme, textSize, name, avatar string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change user settings",
		Long: `Change one or more settings. Unset flags keep their current value.

Examples:
  booktrack settings set --theme dark
  booktrack settings set --name "Avid Reader" --language russian`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			s := a.store.Settings()

			if cmd.Flags().Changed("language") {
				l := domain.Language(language)
				if !l.Valid() {
					return errors.Validation(fmt.Sprintf("invalid language %q (use english or russian)", language))
				}
				s.Language = l
			}
			if cmd.Flags().Changed("theme") {
				t := domain.Theme(theme)
				if !t.Valid() {
					return errors.Validation(fmt.Sprintf("invalid theme %q (use light, dark, or system)", theme))
				}
				s.Theme = t
			}
			if cmd.Flags().Changed("text-size") {
				ts := domain.TextSize(textSize)
				if !ts.Valid() {
					return errors.Validation(fmt.Sprintf("invalid text size %q (use small, standard, or large)", textSize))
				}
				s.TextSize = ts
			}
			if cmd.Flags().Changed("name") {
				s.Profile.DisplayName = name
			}
			if cmd.Flags().Changed("avatar") {
				s.Profile.AvatarSymbol = avatar
			}

			a.store.SetSettings(s)
			fmt.Println("Settings updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "UI language (english, russian)")
	cmd.Flags().StringVar(&theme, "theme", "", "UI theme (light, dark, system)")
	cmd.Flags().StringVar(&textSize, "text-size", "", "text size (small, standard, large)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar symbol")

	return cmd
}
