package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/server/auth"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func offline(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[offlineAnnotation] = "true"
	return cmd
}

func newTokenCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development helpers for identity tokens",
	}

	var (
		identity models.Identity
		secret   string
		ttl      time.Duration
	)
	mint := &cobra.Command{
		Use:   "mint",
		Short: "Sign an access token with the server secret (development only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if identity.ID == "" || secret == "" {
				return errors.New("--id and --secret are required")
			}
			token, err := auth.GenerateToken(identity, []byte(secret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, token)
			return nil
		},
	}
	mint.Flags().StringVar(&identity.ID, "id", "", "subject (user id)")
	mint.Flags().StringVar(&identity.Email, "email", "", "email claim")
	mint.Flags().StringVar(&identity.DisplayName, "name", "", "display name claim")
	mint.Flags().StringVarP(&secret, "secret", "s", "", "server JWT secret")
	mint.Flags().DurationVar(&ttl, "ttl", time.Hour, "token validity")

	cmd.AddCommand(offline(mint))
	return offline(cmd)
}

func newHashKeyCommand(app *App) *cobra.Command {
	var (
		cost     int
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "hashkey",
		Short: "Hash an admin key for the server's admin key setting",
		Long: `Reads an admin key without echo and prints its bcrypt hash for
LUMEN_ADMIN_KEY_HASH. With --generate a random key is created and printed
first; hand it to admins and keep only the hash on the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				key string
				err error
			)
			if generate {
				key, err = common.MakeRandHexString(24)
				if err == nil {
					fmt.Fprintf(app.out, "Admin key: %s\n", key)
				}
			} else {
				key, err = GetSecret(app.out, "Admin key")
			}
			if err != nil {
				return err
			}
			if key == "" {
				return errors.New("admin key is required")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	cmd.Flags().BoolVar(&generate, "generate", false, "generate a random admin key")
	return offline(cmd)
}
