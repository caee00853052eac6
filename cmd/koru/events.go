package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/korulabs/koru/config"
	"github.com/korulabs/koru/schedule"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List scheduled events, earliest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := settings.EnsureDirs(); err != nil {
				return err
			}

			scheduler, err := schedule.Open(filepath.Join(settings.DataDir, "events.db"))
			if err != nil {
				return err
			}
			defer scheduler.Close()

			events, err := scheduler.ListEvents(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events.")
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(out, "%d\t%s\t%s\n", e.ID, e.When, e.Title)
			}
			return nil
		},
	}
}
