package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyverse/server/datekey"
)

func newDatesCmd() *cobra.Command {
	var start, end string
	var days int

	cmd := &cobra.Command{
		Use:   "dates <userID>",
		Short: "List the days a user wrote on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			loc := a.activity.Location()
			to := a.activity.Now()
			if end != "" {
				if to, err = datekey.Parse(end, loc); err != nil {
					return err
				}
			}
			from := datekey.AddDays(to, -(days - 1))
			if start != "" {
				if from, err = datekey.Parse(start, loc); err != nil {
					return err
				}
			}

			for _, key := range a.activity.FetchActivityDates(ctx, args[0], from, to).Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 30, "days to list when --start is not given")
	return cmd
}
