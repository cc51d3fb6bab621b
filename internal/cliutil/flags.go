package cliutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GetString returns the flag value when it was set on the command line,
// and the configured setting of the same name otherwise.
func GetString(cmd *cobra.Command, flag string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	if value := viper.GetString(flag); value != "" {
		return value
	}
	value, _ := cmd.Flags().GetString(flag)
	return value
}

// GetInt is GetString for integer settings.
func GetInt(cmd *cobra.Command, flag string) int {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		value, _ := cmd.Flags().GetInt(flag)
		return value
	}
	if viper.IsSet(flag) {
		return viper.GetInt(flag)
	}
	value, _ := cmd.Flags().GetInt(flag)
	return value
}
