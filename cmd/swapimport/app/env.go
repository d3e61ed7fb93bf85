package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"kubegems.io/swapimport/pkg/store"
)

const EnvPrefix = "SWAPIMPORT"

// BindEnv fills every flag not given on the command line from the
// environment (SWAPIMPORT_<FLAG>, and OLLAMA_MODELS for --model-dir).
// Values taken from the environment count as explicitly set.
func BindEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(FlagModelDir, EnvPrefix+"_MODEL_DIR", store.ModelsDirEnv); err != nil {
		return err
	}

	var errs []string
	flags := cmd.Flags()
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" || !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Sprintf("%s from environment: %v", f.Name, err))
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}
