package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	var storyID string

	cmd := &cobra.Command{
		Use:   "record <userID> <wordCount>",
		Short: "Record today's writing activity for a user",
		Long:  "Record today's writing activity for a user. wordCount is the current total of the saved content, not a delta.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid word count %q", args[1])
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			a.activity.RecordWritingActivity(ctx, args[0], words, storyID)
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %d words for %s\n", words, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&storyID, "story", "", "story or poem id touched by this save")
	return cmd
}
