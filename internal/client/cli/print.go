package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/lumen/internal/api"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatUsage(usage map[string]int) string {
	if len(usage) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(usage))
	for _, k := range slices.Sorted(maps.Keys(usage)) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, usage[k]))
	}
	return strings.Join(parts, ", ")
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func printProfile(w io.Writer, p *api.Profile) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", orDash(p.Name))
	fmt.Fprintf(tw, "Email:\t%s\n", orDash(p.Email))
	fmt.Fprintf(tw, "Education:\t%s\n", orDash(p.EducationLevel))
	fmt.Fprintf(tw, "Level:\t%d (%d/%d XP)\n", p.Level, p.XP, p.XPToNextLevel)
	fmt.Fprintf(tw, "Role:\t%s\n", p.Role)
	fmt.Fprintf(tw, "Achievements:\t%s\n", list(p.Achievements))
	fmt.Fprintf(tw, "Favorites:\t%s\n", list(p.FavoriteResources))
	fmt.Fprintf(tw, "Tool usage:\t%s\n", formatUsage(p.ToolUsage))
	_ = tw.Flush()
}

func printSuggestions(w io.Writer, items []api.Suggestion) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No suggestions.")
		return
	}
	tw := newTable(w, "ID", "STATUS", "FROM", "CREATED", "TEXT")
	for _, s := range items {
		row(tw, s.ID, s.Status, orDash(s.UserName), s.CreatedAt.Local().Format(timeLayout), truncate(s.Text, 48))
	}
	_ = tw.Flush()
}

func printCounts(w io.Writer, title string, counts []api.Count) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(counts) == 0 {
		fmt.Fprintln(w, "  -")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Count)
	}
	_ = tw.Flush()
}
