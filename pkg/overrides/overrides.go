package overrides

import (
	"strings"
)

const (
	ModelSeparator = "="
	ListSeparator  = "|"
)

// Diagnostic describes a directive, or a part of one, that was skipped.
type Diagnostic struct {
	Directive string
	Reason    string
}

type Filter struct {
	Key   string
	Value string
}

type Macro struct {
	Name  string
	Value string
}

// ParseAliases parses MODEL=ALIAS1|ALIAS2 directives. Values from later
// directives for the same model are appended.
func ParseAliases(directives []string) (map[string][]string, []Diagnostic) {
	out := map[string][]string{}
	diags := []Diagnostic{}
	for _, directive := range directives {
		model, values, ok := splitDirective(directive)
		if !ok {
			diags = append(diags, Diagnostic{Directive: directive, Reason: "expected MODEL=ALIAS1|ALIAS2"})
			continue
		}
		for _, value := range values {
			if value == "" {
				diags = append(diags, Diagnostic{Directive: directive, Reason: "empty alias"})
				continue
			}
			out[model] = append(out[model], value)
		}
	}
	return out, diags
}

// ParseFilters parses MODEL=KEY1:VAL1|KEY2=VAL2 directives. Both ':' and '='
// separate a key from its value, whichever comes first.
func ParseFilters(directives []string) (map[string][]Filter, []Diagnostic) {
	out := map[string][]Filter{}
	diags := []Diagnostic{}
	for _, directive := range directives {
		model, values, ok := splitDirective(directive)
		if !ok {
			diags = append(diags, Diagnostic{Directive: directive, Reason: "expected MODEL=KEY:VALUE|KEY:VALUE"})
			continue
		}
		for _, value := range values {
			i := strings.IndexAny(value, ":=")
			if i < 0 {
				if value != "" {
					diags = append(diags, Diagnostic{Directive: directive, Reason: "filter " + value + " has no key separator"})
				}
				continue
			}
			key, val := strings.TrimSpace(value[:i]), strings.TrimSpace(value[i+1:])
			if key == "" {
				diags = append(diags, Diagnostic{Directive: directive, Reason: "empty filter key"})
				continue
			}
			out[model] = append(out[model], Filter{Key: key, Value: val})
		}
	}
	return out, diags
}

// ParseMacros parses NAME=VALUE directives. The value may itself contain '='.
func ParseMacros(directives []string) ([]Macro, []Diagnostic) {
	out := []Macro{}
	diags := []Diagnostic{}
	for _, directive := range directives {
		name, value, ok := strings.Cut(directive, ModelSeparator)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			diags = append(diags, Diagnostic{Directive: directive, Reason: "expected NAME=VALUE"})
			continue
		}
		out = append(out, Macro{Name: name, Value: strings.TrimSpace(value)})
	}
	return out, diags
}

func splitDirective(directive string) (string, []string, bool) {
	model, rest, ok := strings.Cut(directive, ModelSeparator)
	model = strings.TrimSpace(model)
	if !ok || model == "" {
		return "", nil, false
	}
	values := strings.Split(rest, ListSeparator)
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return model, values, true
}
