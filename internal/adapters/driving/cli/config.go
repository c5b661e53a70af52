package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		val, ok := configStore.Get(args[0])
		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting in the configuration file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		if err := configStore.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("set %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", success("✓"), args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		fmt.Fprintln(cmd.OutOrStdout(), configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
