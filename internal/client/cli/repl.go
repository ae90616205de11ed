package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively over one connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.out, "Lumen shell (type 'help' for commands, 'exit' to leave)")
			runREPL(cmd.Context(), app, bufio.NewScanner(app.in), app.out)
			return nil
		},
	}
}

// runREPL reads one command line at a time and executes it against a
// fresh command tree that shares app's connection and cache. It returns
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, app *App, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprint(w, "lumen> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "shell":
			fmt.Fprintln(w, "Already in the shell.")
			continue
		}

		root := NewRootCommand(app)
		root.SetArgs(parts)
		root.SetOut(w)
		root.SetErr(w)
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(w, "Error:", Describe(err))
		}
	}
}
