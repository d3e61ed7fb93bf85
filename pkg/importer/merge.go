package importer

import (
	"context"

	"github.com/go-logr/logr"
	"golang.org/x/exp/slices"
	"kubegems.io/swapimport/pkg/config"
	"kubegems.io/swapimport/pkg/overrides"
	"kubegems.io/swapimport/pkg/types"
)

type MergeOptions struct {
	Templates Templates
	Aliases   map[string][]string
	Filters   map[string][]overrides.Filter
	Unlisted  bool
}

type MergeResult struct {
	// Imported holds the model ids touched by this run, in selection order.
	Imported []string
	Created  []string
}

// Merge upserts every selected model into cfg. Existing entries are only
// ever added to or selectively overwritten.
func Merge(ctx context.Context, cfg *config.Config, selected []types.DiscoveredModel, options MergeOptions) MergeResult {
	log := logr.FromContextOrDiscard(ctx)
	if cfg.Models == nil {
		cfg.Models = map[string]*config.ModelConfig{}
	}

	result := MergeResult{Imported: []string{}, Created: []string{}}
	for _, model := range selected {
		if slices.Contains(result.Imported, model.Name) {
			continue
		}
		cmd, cmdStop := options.Templates.Resolve(model)
		entry, created := Upsert(cfg, model.Name, cmd, cmdStop, options)
		entry.Aliases = MergeAliases(entry.Aliases, options.Aliases[model.Name])
		entry.Filters = MergeFilters(entry.Filters, options.Filters[model.Name])

		result.Imported = append(result.Imported, model.Name)
		if created {
			result.Created = append(result.Created, model.Name)
		}
		log.V(1).Info("merged model", "model", model.Name, "created", created, "cmd", entry.Cmd)
	}
	return result
}

// Upsert returns the entry for id, creating it when absent. The start and
// stop commands of an existing entry are only replaced when the run asked
// for the matching template.
func Upsert(cfg *config.Config, id, cmd, cmdStop string, options MergeOptions) (*config.ModelConfig, bool) {
	entry, ok := cfg.Models[id]
	created := !ok || entry == nil
	if created {
		entry = config.NewModelConfig(cmd)
		entry.Unlisted = options.Unlisted
		cfg.Models[id] = entry
	}
	if options.Templates.OverridesCmd() {
		entry.Cmd = cmd
	}
	if options.Templates.OverridesCmdStop() {
		entry.CmdStop = cmdStop
	}
	return entry, created
}

// MergeAliases appends aliases not already present, keeping existing order.
func MergeAliases(existing []string, aliases []string) []string {
	for _, alias := range aliases {
		if !slices.Contains(existing, alias) {
			existing = append(existing, alias)
		}
	}
	return existing
}

// MergeFilters sets each filter key, replacing existing values.
func MergeFilters(existing map[string]string, filters []overrides.Filter) map[string]string {
	if len(filters) == 0 {
		return existing
	}
	if existing == nil {
		existing = map[string]string{}
	}
	for _, filter := range filters {
		existing[filter.Key] = filter.Value
	}
	return existing
}
