package main

import (
	"fmt"
	"strconv"
	"strings"

	"equipment-loan/internal/adapter/repository/sqlite"
	"equipment-loan/internal/domain/submission"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the review queue, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connector()
			if err != nil {
				return err
			}
			// a fresh DB_PATH lists as empty rather than failing
			if err := sqlite.Migrate(cmd.Context(), conn, a.log); err != nil {
				return err
			}
			items, err := sqlite.NewSubmissionRepository(conn).List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := queueRows(items, strings.TrimSpace(status))
			if len(rows) == 0 {
				fmt.Fprintln(out, "No submissions")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Event", "Start", "Equipment", "Status", "Comment"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only show submissions with this status")
	return cmd
}

func queueRows(items []submission.Submission, status string) [][]string {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		current := s.CurrentStatus()
		if status != "" && !strings.EqualFold(string(current), status) {
			continue
		}
		start := strings.TrimSpace(s.StartDate + " " + s.StartTime)
		rows = append(rows, []string{
			strconv.FormatUint(s.ID, 10),
			s.Name,
			s.EventName,
			start,
			s.Equipment.String(),
			string(current),
			s.ReviewComment,
		})
	}
	return rows
}
