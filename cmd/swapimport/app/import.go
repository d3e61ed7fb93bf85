package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"kubegems.io/swapimport/pkg/config"
	"kubegems.io/swapimport/pkg/importer"
	"kubegems.io/swapimport/pkg/output"
	"kubegems.io/swapimport/pkg/store"
	"kubegems.io/swapimport/pkg/version"
)

const (
	FlagInputConfig        = "input-config"
	FlagOutputConfig       = "output-config"
	FlagModelDir           = "model-dir"
	FlagSpecifyModels      = "specify-models"
	FlagAllModels          = "all-models"
	FlagVerbose            = "verbose"
	FlagCmdTemplate        = "cmd-template"
	FlagStopCmdTemplate    = "stop-cmd-template"
	FlagStartPort          = "start-port"
	FlagHealthCheckTimeout = "health-check-timeout"
	FlagLogLevel           = "log-level"
	FlagMacroOverride      = "macro-override"
	FlagAlias              = "alias"
	FlagFilter             = "filter"
	FlagUnlisted           = "unlisted"
	FlagSingleGroup        = "single-group"
	FlagSingleGroupName    = "single-group-name"
	FlagDryRun             = "dry-run"
	FlagNoClobber          = "no-clobber"
)

type Options struct {
	InputConfig  string
	OutputConfig string
	ModelDir     string
	Verbose      bool

	SpecifyModels []string
	AllModels     bool

	CmdTemplate        string
	StopCmdTemplate    string
	StartPort          int
	HealthCheckTimeout int
	LogLevel           string
	Macros             []string
	Aliases            []string
	Filters            []string
	Unlisted           bool
	SingleGroup        bool
	SingleGroupName    string

	DryRun    bool
	NoClobber bool
}

func DefaultOptions() *Options {
	return &Options{
		AllModels:       true,
		StartPort:       config.DefaultStartPort,
		SingleGroupName: importer.DefaultGroupName,
	}
}

func NewSwapImportCmd() *cobra.Command {
	options := DefaultOptions()
	cmd := &cobra.Command{
		Use:   "swapimport",
		Short: "Import models from an Ollama model store into a llama-swap config file",
		Example: `
  swapimport --dry-run
  swapimport -i config.yaml --cmd-template "llama-server --port \${PORT} -m {model_path}"
  swapimport -i config.yaml -o out.yaml -s llama3:latest,qwen2:7b --alias "llama3:latest=llama|gpt-4o"
  swapimport -i config.yaml --filter "qwen2:7b=strip_params:temperature,top_p" --single-group
		`,
		Version:      version.Get().String(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return BindEnv(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext(options.Verbose)
			defer cancel()
			importOptions, err := options.ImportOptions(cmd.Flags())
			if err != nil {
				return err
			}
			result, err := RunImport(ctx, options, importOptions, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if options.Verbose {
				PrintSummary(cmd.ErrOrStderr(), result)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.InputConfig, FlagInputConfig, "i", options.InputConfig, "YAML config file to read (if not specified, a default config is generated)")
	flags.StringVarP(&options.OutputConfig, FlagOutputConfig, "o", options.OutputConfig, "YAML config file to write (if not specified, the input file is overwritten, or the config is printed when there is no input)")
	flags.StringSliceVarP(&options.SpecifyModels, FlagSpecifyModels, "s", options.SpecifyModels, "names of models to import (repeatable or comma separated), takes precedence over --all-models")
	flags.BoolVarP(&options.AllModels, FlagAllModels, "a", options.AllModels, "import all models from the model directory")
	flags.StringVar(&options.CmdTemplate, FlagCmdTemplate, options.CmdTemplate, "start command template, {model_path} and {model_name} are replaced per model")
	flags.StringVar(&options.StopCmdTemplate, FlagStopCmdTemplate, options.StopCmdTemplate, "stop command template, {model_name} is replaced per model")
	flags.IntVar(&options.StartPort, FlagStartPort, options.StartPort, "set startPort in the config (only written when given)")
	flags.IntVar(&options.HealthCheckTimeout, FlagHealthCheckTimeout, options.HealthCheckTimeout, "set healthCheckTimeout in seconds (only written when given)")
	flags.StringVar(&options.LogLevel, FlagLogLevel, options.LogLevel, "set logLevel (debug, info, warn, error)")
	flags.StringSliceVarP(&options.Macros, FlagMacroOverride, "M", options.Macros, "add or override macros, NAME=VALUE (repeatable or comma separated)")
	flags.StringSliceVar(&options.Aliases, FlagAlias, options.Aliases, "add aliases for a model, MODEL=ALIAS1|ALIAS2 (repeatable or comma separated)")
	flags.StringSliceVar(&options.Filters, FlagFilter, options.Filters, "add filters for a model, MODEL=KEY:VALUE|KEY:VALUE (repeatable or comma separated)")
	flags.BoolVar(&options.Unlisted, FlagUnlisted, options.Unlisted, "mark newly imported models as unlisted")
	flags.BoolVar(&options.SingleGroup, FlagSingleGroup, options.SingleGroup, "put all imported models into a single swap group")
	flags.StringVar(&options.SingleGroupName, FlagSingleGroupName, options.SingleGroupName, "name of the group created by --single-group (implies --single-group)")
	flags.BoolVar(&options.DryRun, FlagDryRun, options.DryRun, "do not write any file, print the resulting config")
	flags.BoolVar(&options.NoClobber, FlagNoClobber, options.NoClobber, "refuse to overwrite an existing output file")

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&options.ModelDir, FlagModelDir, "m", options.ModelDir, "model store directory, defaults to $OLLAMA_MODELS or ~/.ollama/models")
	persistent.BoolVarP(&options.Verbose, FlagVerbose, "v", options.Verbose, "enable verbose output")

	_ = cmd.RegisterFlagCompletionFunc(FlagSpecifyModels, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return CompleteModelNames(cmd.Context(), options.ModelDir, toComplete)
	})
	_ = cmd.RegisterFlagCompletionFunc(FlagLogLevel, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		levels := []string{}
		for _, level := range config.LogLevels {
			levels = append(levels, string(level))
		}
		return levels, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(NewListCmd(options))
	cmd.AddCommand(NewShowCmd(options))
	return cmd
}

// ImportOptions converts the flag values into importer options. Optional
// values are only set when their flag was given.
func (o *Options) ImportOptions(flags *pflag.FlagSet) (*importer.Options, error) {
	options := importer.DefaultOptions()
	options.Selection = importer.NewSelection(o.SpecifyModels, o.AllModels)
	options.AliasDirectives = o.Aliases
	options.FilterDirectives = o.Filters
	options.MacroDirectives = o.Macros
	options.Unlisted = o.Unlisted
	options.SingleGroup = o.SingleGroup || flags.Changed(FlagSingleGroupName)
	options.GroupName = o.SingleGroupName

	if flags.Changed(FlagCmdTemplate) {
		if strings.TrimSpace(o.CmdTemplate) == "" {
			return nil, fmt.Errorf("--%s must not be empty", FlagCmdTemplate)
		}
		tpl := o.CmdTemplate
		options.Templates.Cmd = &tpl
	}
	if flags.Changed(FlagStopCmdTemplate) {
		tpl := o.StopCmdTemplate
		options.Templates.CmdStop = &tpl
	}
	if flags.Changed(FlagStartPort) {
		if o.StartPort < 1 || o.StartPort > 65535 {
			return nil, fmt.Errorf("--%s %d out of range", FlagStartPort, o.StartPort)
		}
		port := o.StartPort
		options.StartPort = &port
	}
	if flags.Changed(FlagHealthCheckTimeout) {
		if o.HealthCheckTimeout < 0 {
			return nil, fmt.Errorf("--%s must not be negative", FlagHealthCheckTimeout)
		}
		timeout := o.HealthCheckTimeout
		options.HealthCheckTimeout = &timeout
	}
	if flags.Changed(FlagLogLevel) {
		level, err := config.ParseLogLevel(o.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", FlagLogLevel, err)
		}
		options.LogLevel = &level
	}
	return options, nil
}

// RunImport loads the input config, scans the store, merges and writes the
// result to its destination.
func RunImport(ctx context.Context, options *Options, importOptions *importer.Options, stdout io.Writer) (importer.Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	cfg, err := config.Load(options.InputConfig)
	if err != nil {
		return importer.Result{}, err
	}

	localstore := store.NewLocalStore(options.ModelDir)
	log.V(1).Info("scanning model store", "dir", localstore.Basepath(), "selection", importOptions.Selection.Mode.String())
	models, scanErrs, err := localstore.Scan(ctx)
	if err != nil {
		return importer.Result{}, err
	}
	for _, scanErr := range scanErrs {
		log.Error(scanErr, "scan model store")
	}

	result := importer.Run(ctx, cfg, models, importOptions)
	log.V(1).Info("merged", "imported", len(result.Imported), "created", len(result.Created), "skipped", len(result.Skipped))

	content, err := config.Marshal(cfg)
	if err != nil {
		return result, err
	}
	dest := output.Decide(output.Options{
		DryRun:     options.DryRun,
		InputPath:  options.InputConfig,
		OutputPath: options.OutputConfig,
		NoClobber:  options.NoClobber,
	})
	if err := output.Write(ctx, dest, content, stdout); err != nil {
		return result, err
	}
	return result, nil
}

func PrintSummary(w io.Writer, result importer.Result) {
	created := map[string]bool{}
	for _, id := range result.Created {
		created[id] = true
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Model", "Action"})
	for _, id := range result.Imported {
		action := "updated"
		if created[id] {
			action = "created"
		}
		t.AppendRow(table.Row{id, action})
	}
	for _, skip := range result.Skipped {
		t.AppendRow(table.Row{skip.Name, "skipped: " + skip.Reason})
	}
	if result.GroupName != "" {
		action := "group kept"
		if result.GroupCreated {
			action = "group created"
		}
		t.AppendFooter(table.Row{result.GroupName, action})
	}
	t.Render()
}
