package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/rKV/cmd/kv"
	"github.com/ValentinKolb/rKV/cmd/lock"
	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "v1.0.0"

// RootCmd is the base command of the rKV CLI
var RootCmd = &cobra.Command{
	Use:   "rkv",
	Short: "rKV - conditional key-value operations over a remote store",
	Long: util.WrapString(
		"rKV provides namespaced, type-preserving key-value operations (add, update, upsert) " +
			"on top of a remote Redis backend or a local in-memory store, with optional " +
			"distributed per-key locking and automatic retry of transient backend failures.",
	),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.InitClientConfig()
		if err := util.BindFlags(cmd); err != nil {
			return err
		}
		return logger.SetLevel(viper.GetString("log-level"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of rKV",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rKV %s\n", version)
	},
}

func init() {
	RootCmd.PersistentFlags().String("backend", "redis", util.WrapString("The store backend to use. Must be one of: redis, memory"))
	RootCmd.PersistentFlags().String("log-level", "info", util.WrapString("The log level. Must be one of: debug, info, warn, error"))

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(lock.LockCommands)
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
