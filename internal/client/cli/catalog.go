package cli

import (
	"fmt"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/spf13/cobra"
)

func newPingCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server and its store are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			if err := app.client.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "OK")
			return nil
		},
	}
}

func newAchievementsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List every achievement that can be unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			items, err := app.client.Achievements(ctx)
			if err != nil {
				return err
			}
			tw := newTable(app.out, "ID", "NAME", "DESCRIPTION")
			for _, a := range items {
				row(tw, a.ID, a.Name, a.Description)
			}
			return tw.Flush()
		},
	}
}

func newResourcesCommand(app *App) *cobra.Command {
	var filter api.ListResourcesRequest

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Browse the resource library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			items, err := app.client.Resources(ctx, filter)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(app.out, "No resources match.")
				return nil
			}
			tw := newTable(app.out, "ID", "TITLE", "TYPE", "CATEGORY", "LEVEL")
			for _, r := range items {
				row(tw, r.ID, r.Title, r.Type, r.Category, r.EducationLevel)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter.Term, "query", "q", "", "search title and description")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.Level, "level", "", "filter by education level")
	return cmd
}
