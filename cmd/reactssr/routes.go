package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reactssr/pkg/manifest"
)

// Output formats of the routes command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// routeRow is one line of the routes listing.
type routeRow struct {
	ID           string `json:"id" yaml:"id"`
	ParentID     string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	Module       string `json:"module" yaml:"module"`
	ServerModule string `json:"serverModule,omitempty" yaml:"serverModule,omitempty"`
	Index        bool   `json:"index,omitempty" yaml:"index,omitempty"`
}

func newRoutesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the build manifest",
		Long: `List every route declared in the build manifest, sorted by id.

Examples:
  reactssr routes
  reactssr routes --format json
  reactssr routes -f yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			switch format {
			case formatTable, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unknown format %q: want %s, %s or %s", format, formatTable, formatJSON, formatYAML)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			return writeRoutes(cmd.OutOrStdout(), format, routeRows(m))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json, yaml)")
	return cmd
}

func routeRows(m *manifest.Manifest) []routeRow {
	ids := m.RouteIDs()
	rows := make([]routeRow, 0, len(ids))
	for _, id := range ids {
		r := m.Assets.Routes[id]
		rows = append(rows, routeRow{
			ID:           id,
			ParentID:     r.ParentID,
			Path:         r.Path,
			Module:       r.Module,
			ServerModule: m.Routes[id].Module,
			Index:        r.Index,
		})
	}
	return rows
}

func writeRoutes(w io.Writer, format string, rows []routeRow) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPARENT\tPATH\tINDEX\tMODULE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", r.ID, r.ParentID, r.Path, r.Index, r.Module)
	}
	return tw.Flush()
}
