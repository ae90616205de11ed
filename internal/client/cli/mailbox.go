package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSuggestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [text...]",
		Short: "Send a suggestion to the team",
		Long:  "Sends the arguments as a suggestion. With no arguments the text is read from standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				t, err := GetMultiline(app.in, "Your suggestion", app.out)
				if err != nil {
					return err
				}
				text = t
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("suggestion text is empty")
			}

			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			s, err := app.client.SubmitSuggestion(ctx, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Thanks! Suggestion %s is %s.\n", s.ID, s.Status)
			return nil
		},
	}
}

func newSuggestionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Moderate the suggestion mailbox (admins)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all suggestions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			items, err := app.client.Suggestions(ctx)
			if err != nil {
				return err
			}
			printSuggestions(app.out, items)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <pending|in_review|accepted|rejected>",
		Short: "Move a suggestion through the review workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()
			s, err := app.client.SetSuggestionStatus(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Suggestion %s is now %s.\n", s.ID, s.Status)
			return nil
		},
	})
	return cmd
}
