package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"libwebdoc/internal/exporter/common"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
)

func newListCommand(root *rootOptions) *cobra.Command {
	var showParams bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the documented API methods",
		Long: `Run discovery and extraction without writing any report and print the
documented methods as a table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			logPath := filepath.Join(cfg.Output.Dir, logFileName)
			if err := logger.Init(cmd.ErrOrStderr(), logPath, root.verbose); err != nil {
				return err
			}
			defer logger.Close()

			if !cfg.Enabled() {
				return fmt.Errorf("no API namespace configured (libweb.namespace)")
			}

			site, err := buildSite(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}

			renderMethods(cmd.OutOrStdout(), site, showParams)
			return nil
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolVarP(&showParams, "params", "p", false, "Also list every parameter")

	return cmd
}

// renderMethods prints one row per method, in page order
func renderMethods(w io.Writer, site *model.Site, showParams bool) {
	classes := common.SortClasses(site.Classes)
	if len(classes) == 0 {
		_, _ = fmt.Fprintln(w, "(0 methods)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Page", "Verb", "Name", "Method", "Params"}
	if showParams {
		header = table.Row{"Page", "Verb", "Name", "Param", "Description"}
	}
	t.AppendHeader(header)

	for _, doc := range classes {
		for _, m := range doc.Methods {
			if !showParams {
				t.AppendRow(table.Row{doc.PagePath(), m.Verb, m.Name, m.Method, len(m.Parameters)})
				continue
			}
			t.AppendRow(table.Row{doc.PagePath(), m.Verb, m.Name, "", m.Description})
			for _, p := range common.FlattenParams(m.Parameters) {
				t.AppendRow(table.Row{"", "", "", "  " + p.Label, p.Record.Description})
			}
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d methods)\n", site.Summary.TotalMethods)
}
