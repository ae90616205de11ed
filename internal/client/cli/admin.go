package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/lumen/internal/client/cache"
	"github.com/dmitrijs2005/lumen/internal/filex"
	"github.com/spf13/cobra"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
		Long: `Administrative commands require an admin account and the server's admin
key. Run "lumen admin unlock" once to cache the key.`,
	}
	cmd.AddCommand(
		newAdminUnlockCommand(app),
		newAdminLockCommand(app),
		newAdminUsersCommand(app),
		newAdminStatsCommand(app),
		newAdminExportCommand(app),
	)
	return cmd
}

func newAdminUnlockCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Cache the admin key for later admin commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := GetSecret(app.out, "Admin key")
			if err != nil {
				return err
			}
			if key == "" {
				return errors.New("admin key is required")
			}
			if err := app.cache.Set(cmd.Context(), cache.KeyAdminKey, []byte(key)); err != nil {
				return err
			}
			app.client.SetAdminKey(key)
			fmt.Fprintln(app.out, "Admin key stored.")
			return nil
		},
	}
}

func newAdminLockCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Forget the cached admin key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cache.Delete(cmd.Context(), cache.KeyAdminKey); err != nil {
				return err
			}
			app.client.SetAdminKey("")
			fmt.Fprintln(app.out, "Admin key removed.")
			return nil
		},
	}
}

func newAdminUsersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			users, err := app.client.Users(ctx)
			if err != nil {
				return err
			}
			tw := newTable(app.out, "ID", "NAME", "EMAIL", "ROLE", "LEVEL", "XP", "ACHIEVEMENTS")
			for _, u := range users {
				row(tw, u.ID, orDash(u.Name), orDash(u.Email), u.Role, u.Level, u.XP, len(u.Achievements))
			}
			return tw.Flush()
		},
	}
}

func newAdminStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			s, err := app.client.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Users: %d\n", s.TotalUsers)
			fmt.Fprintf(app.out, "Average level: %.1f\n", s.AverageLevel)
			fmt.Fprintf(app.out, "Achievements unlocked: %d\n", s.TotalAchievements)
			printCounts(app.out, "Tool usage", s.ToolUsage)
			printCounts(app.out, "Education levels", s.EducationLevels)
			return nil
		},
	}
}

func newAdminExportCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a statistics report to object storage",
		Long: `Writes a statistics report to the report bucket and prints a
time-limited download link. With --output the report is also saved locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			r, err := app.client.ExportReport(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Report: %s\nDownload: %s\n", r.Key, r.URL)
			if output == "" {
				return nil
			}
			return saveReport(ctx, r.URL, output, app.out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "also download the report to this file")
	return cmd
}

func saveReport(ctx context.Context, url, path string, w io.Writer) (err error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	n, err := download(ctx, url, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %d bytes to %s\n", n, path)
	return nil
}
