package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lumen/internal/client/cache"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token and open a session",
		Long: `Stores the identity token issued by the identity provider in the local
cache and starts a session. The first session registers the profile.
Without --token the token is read from the terminal without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				t, err := GetSecret(app.out, "Access token")
				if err != nil {
					return err
				}
				token = t
			}
			if token == "" {
				return errors.New("access token is required")
			}

			app.client.SetAccessToken(token)
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			p, err := app.client.StartSession(ctx)
			if err != nil {
				app.client.SetAccessToken("")
				return err
			}
			if err := app.cache.Set(cmd.Context(), cache.KeyAccessToken, []byte(token)); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Welcome, %s! Level %d, role %s.\n", orDash(p.Name), p.Level, p.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "access token (prompted when omitted)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached access token and admin key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cache.Clear(cmd.Context()); err != nil {
				return err
			}
			app.client.SetAccessToken("")
			app.client.SetAdminKey("")
			fmt.Fprintln(app.out, "Logged out.")
			return nil
		},
	}
}

func newProfileCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			p, err := app.client.Profile(ctx)
			if err != nil {
				return err
			}
			printProfile(app.out, p)
			return nil
		},
	}
}

func newProgressCommand(app *App) *cobra.Command {
	var (
		tool string
		xp   int
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record a tool use and earn experience",
		Long: `Records one use of --tool and grants its standard reward, or the amount
given with --xp. Unlocked achievements and level-ups are reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var amount *int
			if cmd.Flags().Changed("xp") {
				amount = &xp
			}
			if tool == "" && amount == nil {
				return errors.New("specify --tool or --xp")
			}

			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			resp, err := app.client.AddProgress(ctx, tool, amount)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out, "+%d XP\n", resp.XPGained)
			for _, n := range resp.Notifications {
				fmt.Fprintf(app.out, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
			}
			p := resp.Profile
			fmt.Fprintf(app.out, "Level %d, %d/%d XP\n", p.Level, p.XP, p.XPToNextLevel)
			return nil
		},
	}
	cmd.Flags().StringVar(&tool, "tool", "", "tool identifier, e.g. chatbot")
	cmd.Flags().IntVar(&xp, "xp", 0, "experience to grant instead of the tool's reward")
	return cmd
}

func newSettingsCommand(app *App) *cobra.Command {
	var name, education string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Change your display name or education level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nameSet, eduSet := cmd.Flags().Changed("name"), cmd.Flags().Changed("education")
			if !nameSet && !eduSet {
				return errors.New("specify --name or --education")
			}

			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			if !nameSet || !eduSet {
				cur, err := app.client.Profile(ctx)
				if err != nil {
					return err
				}
				if !nameSet {
					name = cur.Name
				}
				if !eduSet {
					education = cur.EducationLevel
				}
			}

			p, err := app.client.UpdateProfile(ctx, name, education)
			if err != nil {
				return err
			}
			printProfile(app.out, p)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&education, "education", "", "education level")
	return cmd
}

func newFavoriteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <resource-id>",
		Short: "Add or remove a library resource from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			resp, err := app.client.ToggleFavorite(ctx, args[0])
			if err != nil {
				return err
			}
			if resp.Favorite {
				fmt.Fprintf(app.out, "Added %s to favorites.\n", args[0])
			} else {
				fmt.Fprintf(app.out, "Removed %s from favorites.\n", args[0])
			}
			return nil
		},
	}
}
