package importer

import (
	"strings"

	"k8s.io/utils/pointer"
	"kubegems.io/swapimport/pkg/config"
)

const DefaultGroupName = "imported"

// Group adds a swap group named name holding members. An existing group of
// that name is left untouched; it reports whether a group was created.
func Group(cfg *config.Config, name string, members []string) bool {
	if name = strings.TrimSpace(name); name == "" {
		name = DefaultGroupName
	}
	if len(members) == 0 {
		return false
	}
	if cfg.Groups == nil {
		cfg.Groups = map[string]*config.GroupConfig{}
	}
	if _, exists := cfg.Groups[name]; exists {
		return false
	}
	cfg.Groups[name] = &config.GroupConfig{
		Swap:    pointer.Bool(true),
		Members: append([]string{}, members...),
	}
	return true
}
