package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 4).
			Align(lipgloss.Center)

	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "libwebdoc v%s (%s)\n", Version, GitCommit)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), appDesc)
		},
	}
}

func printBanner(w io.Writer) {
	title := fmt.Sprintf("LIBWEBDOC v%s", Version)
	_, _ = fmt.Fprintln(w, bannerStyle.Render(title+"\n"+subtleStyle.Render(appDesc)))
	_, _ = fmt.Fprintln(w)
}
