// Package env overlays environment variables onto cobra flags.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const errorMessagePrefix = "error mapping environment variables to command flags"

// CheckEnvironmentVariables sets every flag of command that was not given on
// the command line from its environment variable, if present.
//
// Flags of the root command and flags inherited from it use
// <PREFIX>_<FLAG>; flags local to a subcommand use <PREFIX>_<CMD>_<FLAG>.
// Dashes in names become underscores.
func CheckEnvironmentVariables(prefix string, command *cobra.Command) error {
	global := viper.New()
	global.SetEnvPrefix(prefix)
	global.AutomaticEnv()

	local := global
	if command.HasParent() {
		local = viper.New()
		local.SetEnvPrefix(fmt.Sprintf("%s_%s", prefix, command.Name()))
		local.AutomaticEnv()
	}

	var errs []string
	inherited := command.InheritedFlags()
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		v := local
		if inherited.Lookup(f.Name) != nil {
			v = global
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !v.IsSet(configName) {
			return
		}
		if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(configName))); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
