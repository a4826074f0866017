package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd is a thin pass-through to viper's user config file, out of
// scope for the core per spec.md (configuration file loading is an
// external collaborator — the core only ever consumes config.Snapshot).
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set a commit-synth configuration key",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := userConfigViper()
		v.Set(args[0], args[1])
		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("config set: %w", err)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration key's value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := userConfigViper()
		fmt.Fprintln(cmd.OutOrStdout(), v.GetString(args[0]))
		return nil
	},
}

func userConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("commit-synth")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/commit-synth")
	_ = v.ReadInConfig()
	return v
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
