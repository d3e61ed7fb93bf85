package importer

import (
	"strings"

	"kubegems.io/swapimport/pkg/types"
)

const (
	PlaceholderModelPath = "{model_path}"
	PlaceholderModelName = "{model_name}"
)

// Templates holds the start and stop command templates of one run. A nil
// template means it was not requested and the default applies.
type Templates struct {
	Cmd     *string
	CmdStop *string
}

func (t Templates) OverridesCmd() bool {
	return t.Cmd != nil
}

func (t Templates) OverridesCmdStop() bool {
	return t.CmdStop != nil
}

// Resolve returns the start command and the stop command for model. Without
// a start template the command is the artifact path; without a stop template
// there is no stop command.
func (t Templates) Resolve(model types.DiscoveredModel) (string, string) {
	cmd, cmdStop := model.Path, ""
	if t.Cmd != nil {
		cmd = Expand(*t.Cmd, model)
	}
	if t.CmdStop != nil {
		cmdStop = Expand(*t.CmdStop, model)
	}
	return cmd, cmdStop
}

// Expand replaces every placeholder occurrence in a single pass, so text
// substituted in is never expanded again.
func Expand(template string, model types.DiscoveredModel) string {
	return strings.NewReplacer(
		PlaceholderModelPath, model.Path,
		PlaceholderModelName, model.Name,
	).Replace(template)
}
