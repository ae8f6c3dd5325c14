package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
	"github.com/heartmarshall/myenglish-scheduler/internal/service/study"
)

var reviewCmd = &cobra.Command{
	Use:   "review CARD_ID",
	Short: "Record a review result for a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := reviewInput(cmd, args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		card, err := a.Study.ReviewCard(ctx, input)
		if err != nil {
			return err
		}
		printCard(cmd.OutOrStdout(), card)
		return nil
	},
}

var relearnCmd = &cobra.Command{
	Use:   "relearn CARD_ID",
	Short: "Put a mastered card back into review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("card id", args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		card, err := a.Study.RelearnCard(ctx, study.RelearnCardInput{CardID: id})
		if err != nil {
			return err
		}
		printCard(cmd.OutOrStdout(), card)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep OWNER_ID",
	Short: "Apply overdue, freeze and thaw transitions for a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := parseID("owner id", args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Study.SweepOverdue(ctx, owner)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d thawed=%d frozen=%d overdue=%d\n",
			res.Scanned, res.Thawed, res.Frozen, res.Overdue)
		return nil
	},
}

var syncFolderCmd = &cobra.Command{
	Use:   "sync-folder FOLDER_ID",
	Short: "Merge review timers of same-stage cards in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("folder id", args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		moved, err := a.Study.SyncFolder(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range moved {
			printCard(cmd.OutOrStdout(), c)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d cards moved\n", len(moved))
		return nil
	},
}

var armCmd = &cobra.Command{
	Use:   "arm FOLDER_ID",
	Short: "Schedule the folder alarm after a delay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delay, _ := cmd.Flags().GetDuration("in")
		id, err := parseID("folder id", args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Alarms.ScheduleFolder(ctx, id, delay)
	},
}

func init() {
	reviewFlags(reviewCmd)
	armCmd.Flags().Duration("in", 0, "delay before the alarm fires")
}

func reviewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("correct", false, "the answer was correct")
	cmd.Flags().Int("response-ms", -1, "response time in milliseconds (omit when unknown)")
	cmd.Flags().String("folder", "", "folder the review happened in")
}

func reviewInput(cmd *cobra.Command, cardArg string) (study.ReviewCardInput, error) {
	correct, _ := cmd.Flags().GetBool("correct")
	responseMs, _ := cmd.Flags().GetInt("response-ms")
	folder, _ := cmd.Flags().GetString("folder")

	id, err := parseID("card id", cardArg)
	if err != nil {
		return study.ReviewCardInput{}, err
	}

	input := study.ReviewCardInput{CardID: id, Correct: correct}
	if cmd.Flags().Changed("response-ms") {
		input.ResponseTimeMs = &responseMs
	}
	if folder != "" {
		fid, err := parseID("folder id", folder)
		if err != nil {
			return study.ReviewCardInput{}, err
		}
		input.FolderID = &fid
	}
	return input, nil
}

func parseID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return id, nil
}

func printCard(w io.Writer, c domain.Card) {
	fmt.Fprintf(w, "%s stage=%d next=%s mastered=%t overdue=%t frozen_until=%s\n",
		c.ID, c.Stage, formatTime(c.NextReviewAt), c.IsMastered, c.IsOverdue, formatTime(c.FrozenUntil))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
