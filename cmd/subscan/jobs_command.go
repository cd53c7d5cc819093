package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subscan/internal/store"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect recorded extraction jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(cmd, ctx, "")
		},
	}

	var statusFilter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(cmd, ctx, statusFilter)
		},
	}
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (pending, extracting, recognizing, generating, completed, failed)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsShow(cmd, ctx, args[0])
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a job record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := openJobStore(ctx)
			if err != nil {
				return err
			}
			defer jobs.Close()

			removed, err := jobs.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no job with id %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every job record",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := openJobStore(ctx)
			if err != nil {
				return err
			}
			defer jobs.Close()

			cleared, err := jobs.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", cleared)
			return nil
		},
	}

	jobsCmd.AddCommand(listCmd, showCmd, rmCmd, clearCmd)
	return jobsCmd
}

func openJobStore(ctx *commandContext) (*store.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	jobs, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	return jobs, nil
}

func runJobsList(cmd *cobra.Command, ctx *commandContext, statusFilter string) error {
	jobs, err := openJobStore(ctx)
	if err != nil {
		return err
	}
	defer jobs.Close()

	var statuses []store.Status
	if statusFilter != "" {
		statuses = append(statuses, store.Status(statusFilter))
	}
	list, err := jobs.List(cmd.Context(), statuses...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No jobs recorded")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, job := range list {
		rows = append(rows, []string{
			shortID(job.ID),
			filepath.Base(job.SourcePath),
			string(job.Status),
			strconv.Itoa(job.CueCount),
			formatAge(job.UpdatedAt),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Source", "Status", "Cues", "Updated"},
		rows,
		4,
	))
	return nil
}

func runJobsShow(cmd *cobra.Command, ctx *commandContext, id string) error {
	jobs, err := openJobStore(ctx)
	if err != nil {
		return err
	}
	defer jobs.Close()

	job, err := jobs.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("no job with id %q", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", job.ID)
	fmt.Fprintf(out, "Source:   %s\n", job.SourcePath)
	fmt.Fprintf(out, "Status:   %s\n", job.Status)
	if job.Language != "" {
		fmt.Fprintf(out, "Language: %s\n", job.Language)
	}
	fmt.Fprintf(out, "FPS:      %g\n", job.FPS)
	fmt.Fprintf(out, "Frames:   %d\n", job.FrameCount)
	fmt.Fprintf(out, "Cues:     %d\n", job.CueCount)
	if job.OutputPath != "" {
		fmt.Fprintf(out, "Output:   %s\n", job.OutputPath)
	}
	if job.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
	}
	fmt.Fprintf(out, "Created:  %s\n", job.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Updated:  %s\n", job.UpdatedAt.Local().Format(time.RFC1123))
	return nil
}

// shortID truncates a uuid for table display; show accepts the full id.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
