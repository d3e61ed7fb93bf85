package importer

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"kubegems.io/swapimport/pkg/config"
	"kubegems.io/swapimport/pkg/overrides"
	"kubegems.io/swapimport/pkg/types"
)

type Options struct {
	Selection Selection
	Templates Templates

	AliasDirectives  []string
	FilterDirectives []string
	MacroDirectives  []string

	Unlisted    bool
	SingleGroup bool
	GroupName   string

	StartPort          *int
	HealthCheckTimeout *int
	LogLevel           *config.LogLevel
}

func DefaultOptions() *Options {
	return &Options{
		Selection: Selection{Mode: SelectAll},
	}
}

type Result struct {
	Imported     []string
	Created      []string
	Skipped      []Skip
	Diagnostics  []overrides.Diagnostic
	GroupName    string
	GroupCreated bool
}

// Run imports discovered models into cfg according to options. Nothing in
// here fails: problems with individual models or directives are reported in
// the result and logged.
func Run(ctx context.Context, cfg *config.Config, discovered []types.DiscoveredModel, options *Options) Result {
	log := logr.FromContextOrDiscard(ctx)
	result := Result{}

	selected, skipped := Select(discovered, options.Selection)
	result.Skipped = skipped
	for _, skip := range skipped {
		log.Info("skipping model", "model", skip.Name, "reason", skip.Reason)
	}

	aliases, diags := overrides.ParseAliases(options.AliasDirectives)
	result.Diagnostics = append(result.Diagnostics, diags...)
	filters, diags := overrides.ParseFilters(options.FilterDirectives)
	result.Diagnostics = append(result.Diagnostics, diags...)
	macros, diags := overrides.ParseMacros(options.MacroDirectives)
	result.Diagnostics = append(result.Diagnostics, diags...)
	for _, diag := range result.Diagnostics {
		log.Info("ignoring directive", "directive", diag.Directive, "reason", diag.Reason)
	}

	merged := Merge(ctx, cfg, selected, MergeOptions{
		Templates: options.Templates,
		Aliases:   aliases,
		Filters:   filters,
		Unlisted:  options.Unlisted,
	})
	result.Imported, result.Created = merged.Imported, merged.Created
	warnUnused(log, "alias", aliases, merged.Imported)
	warnUnused(log, "filter", filters, merged.Imported)

	if options.SingleGroup {
		result.GroupName = strings.TrimSpace(options.GroupName)
		if result.GroupName == "" {
			result.GroupName = DefaultGroupName
		}
		result.GroupCreated = Group(cfg, result.GroupName, merged.Imported)
		if !result.GroupCreated {
			log.V(1).Info("group not created", "group", result.GroupName, "members", len(merged.Imported))
		}
	}

	ApplyGlobals(cfg, options, macros)
	return result
}

// ApplyGlobals sets the top level fields requested on the command line.
func ApplyGlobals(cfg *config.Config, options *Options, macros []overrides.Macro) {
	if options.StartPort != nil {
		port := *options.StartPort
		cfg.StartPort = &port
	}
	if options.HealthCheckTimeout != nil {
		timeout := *options.HealthCheckTimeout
		cfg.HealthCheckTimeout = &timeout
	}
	if options.LogLevel != nil {
		level := *options.LogLevel
		cfg.LogLevel = &level
	}
	if len(macros) > 0 && cfg.Macros == nil {
		cfg.Macros = map[string]string{}
	}
	for _, macro := range macros {
		cfg.Macros[macro.Name] = macro.Value
	}
}

func warnUnused[T any](log logr.Logger, kind string, byModel map[string][]T, imported []string) {
	seen := map[string]bool{}
	for _, id := range imported {
		seen[id] = true
	}
	for model := range byModel {
		if !seen[model] {
			log.Info("directive targets a model that was not imported", "kind", kind, "model", model)
		}
	}
}
