package importer

import (
	"strings"

	"kubegems.io/swapimport/pkg/types"
)

type SelectionMode int

const (
	SelectNone SelectionMode = iota
	SelectAll
	SelectExplicit
)

func (m SelectionMode) String() string {
	switch m {
	case SelectAll:
		return "all"
	case SelectExplicit:
		return "explicit"
	default:
		return "none"
	}
}

type Selection struct {
	Mode  SelectionMode
	Names []string
}

// NewSelection resolves the selection flags. A non-empty name list always
// wins over all.
func NewSelection(names []string, all bool) Selection {
	cleaned := []string{}
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	switch {
	case len(cleaned) > 0:
		return Selection{Mode: SelectExplicit, Names: cleaned}
	case all:
		return Selection{Mode: SelectAll}
	default:
		return Selection{Mode: SelectNone}
	}
}

// Skip is a model that was asked for or discovered but not imported.
type Skip struct {
	Name   string
	Reason string
}

const (
	SkipReasonNotFound = "not found in model store"
	SkipReasonNoPath   = "no model file resolved"
)

// Select returns the discovered models to import, in discovery order.
func Select(discovered []types.DiscoveredModel, selection Selection) ([]types.DiscoveredModel, []Skip) {
	selected := []types.DiscoveredModel{}
	skipped := []Skip{}

	var candidates []types.DiscoveredModel
	switch selection.Mode {
	case SelectAll:
		candidates = discovered
	case SelectExplicit:
		wanted := map[string]bool{}
		for _, name := range selection.Names {
			wanted[name] = true
		}
		found := map[string]bool{}
		for _, model := range discovered {
			if wanted[model.Name] {
				candidates = append(candidates, model)
				found[model.Name] = true
			}
		}
		for _, name := range selection.Names {
			if !found[name] {
				skipped = append(skipped, Skip{Name: name, Reason: SkipReasonNotFound})
				found[name] = true
			}
		}
	}

	for _, model := range candidates {
		if model.Path == "" {
			skipped = append(skipped, Skip{Name: model.Name, Reason: SkipReasonNoPath})
			continue
		}
		selected = append(selected, model)
	}
	return selected, skipped
}
