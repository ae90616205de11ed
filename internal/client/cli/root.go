package cli

import (
	"time"

	"github.com/dmitrijs2005/lumen/internal/client/config"
	"github.com/spf13/cobra"
)

const offlineAnnotation = "offline"

// NewRootCommand builds the lumen command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		configPath string
		server     string
		cachePath  string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Command-line client for the Lumen progress service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.out = cmd.OutOrStdout()
			if cmd.Annotations[offlineAnnotation] == "true" {
				return nil
			}

			cfg := app.config
			if cfg == nil {
				loaded, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerEndpointAddr = server
			}
			if cmd.Flags().Changed("cache") {
				cfg.CachePath = cachePath
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			return app.init(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVarP(&server, "server", "a", "", "server gRPC address (host:port)")
	pf.StringVar(&cachePath, "cache", "", "path to the local cache database")
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout, e.g. 5s")

	root.AddCommand(
		newPingCommand(app),
		newAchievementsCommand(app),
		newResourcesCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newProfileCommand(app),
		newProgressCommand(app),
		newSettingsCommand(app),
		newFavoriteCommand(app),
		newSuggestCommand(app),
		newSuggestionsCommand(app),
		newAdminCommand(app),
		newTokenCommand(app),
		newHashKeyCommand(app),
		newShellCommand(app),
	)
	return root
}
