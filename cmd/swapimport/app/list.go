package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"kubegems.io/swapimport/pkg/store"
	"kubegems.io/swapimport/pkg/types"
	"kubegems.io/swapimport/pkg/units"
	"sigs.k8s.io/yaml"
)

const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

func NewListCmd(options *Options) *cobra.Command {
	format := FormatTable
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list models found in the model store",
		Example: `
  swapimport list
  swapimport list -m /srv/ollama/models -o yaml
		`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext(options.Verbose)
			defer cancel()
			models, err := List(ctx, options.ModelDir)
			if err != nil {
				return err
			}
			return PrintModels(cmd.OutOrStdout(), models, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", format, "output format: table, yaml or json")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatYAML, FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// List scans the store. Unlike an import, a missing store is an error here.
func List(ctx context.Context, modelDir string) ([]types.DiscoveredModel, error) {
	log := logr.FromContextOrDiscard(ctx)
	localstore := store.NewLocalStore(modelDir)
	if err := localstore.Check(); err != nil {
		return nil, err
	}
	models, scanErrs, err := localstore.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, scanErr := range scanErrs {
		log.Error(scanErr, "scan model store")
	}
	return models, nil
}

func PrintModels(w io.Writer, models []types.DiscoveredModel, format string) error {
	switch format {
	case FormatYAML:
		content, err := yaml.Marshal(models)
		if err != nil {
			return err
		}
		_, err = w.Write(content)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	case FormatTable, "":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Name", "Digest", "Size", "Path"})
		for _, model := range models {
			digest, path := "", model.Path
			if model.Digest != "" && model.Digest.Validate() == nil {
				digest = model.Digest.Encoded()[:12]
			}
			if path == "" {
				path = "<missing>"
			}
			t.AppendRow(table.Row{model.Name, digest, units.HumanSize(model.Size), path})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func CompleteModelNames(ctx context.Context, modelDir string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		ctx = context.Background()
	}
	models, _, err := store.NewLocalStore(modelDir).Scan(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := []string{}
	for _, model := range models {
		if strings.HasPrefix(model.Name, toComplete) {
			names = append(names, model.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
