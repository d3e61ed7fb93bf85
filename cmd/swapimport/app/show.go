package app

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"kubegems.io/swapimport/pkg/config"
)

func NewShowCmd(options *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "validate a config file and print it as it would be written",
		Example: `
  swapimport show config.yaml
  swapimport show -i config.yaml
		`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := options.InputConfig
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("a config file is required")
			}
			return Show(path, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&options.InputConfig, FlagInputConfig, "i", options.InputConfig, "YAML config file to read")
	return cmd
}

func Show(path string, w io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	content, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
