package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/errors"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show reading goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			for _, g := range a.store.Goals() {
				fmt.Printf("%-6s %d/%d books (%.0f%%)\n",
					g.Period, g.CompletedBooks, g.TargetBooks, g.Progress()*100)
			}
			return nil
		},
	}

	cmd.AddCommand(goalsSetCmd())
	return cmd
}

func goalsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [period] [target]",
		Short: "Change a goal's target book count",
		Long: `Change the target for the week, month, or year goal.

Example:
  booktrack goals set year 30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			period := domain.GoalPeriod(args[0])
			if !period.Valid() {
				return errors.Validation(fmt.Sprintf("invalid period %q (use week, month, or year)", args[0]))
			}

			target, err := strconv.Atoi(args[1])
			if err != nil || target < 1 {
				return errors.Validation(fmt.Sprintf("invalid target: %s", args[1]))
			}

			for _, g := range a.store.Goals() {
				if g.Period == period {
					a.store.SetGoalTarget(g.ID, target)
					fmt.Printf("Goal updated: %s target is now %d books\n", period, target)
					return nil
				}
			}
			return errors.NotFound(fmt.Sprintf("no %s goal found", period))
		},
	}
}

func achievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			var unlocked int
			for _, ach := range a.store.Achievements() {
				mark := "[ ]"
				when := ""
				if ach.IsUnlocked {
					mark = "[x]"
					unlocked++
					if ach.UnlockedAt != nil {
						when = "  " + ach.UnlockedAt.Format(dateFormat)
					}
				}
				fmt.Printf("%s %-15s %s%s\n", mark, ach.Title, ach.Description, when)
			}
			fmt.Printf("\nUnlocked: %d/%d\n", unlocked, len(a.store.Achievements()))
			return nil
		},
	}
}
