package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak <userID>",
		Short: "Show a user's current and longest streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.activity.Summary(ctx, args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current streak: %d\n", s.CurrentStreak)
			fmt.Fprintf(out, "Longest streak: %d\n", s.LongestStreak)
			if s.LastActiveDate != "" {
				fmt.Fprintf(out, "Last active:    %s\n", s.LastActiveDate)
			}
			return nil
		},
	}
}
