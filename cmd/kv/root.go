package kv

import (
	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/manager"
	"github.com/spf13/cobra"
)

// mgr is created once per invocation by the persistent pre-run hook
var mgr manager.IManager

// KeyValueCommands bundles all key-value subcommands
var KeyValueCommands = &cobra.Command{
	Use:   "kv",
	Short: "Interact with the key-value manager",
	Long: util.WrapString(
		"Run key-value operations against the configured backend. All keys are scoped " +
			"to the configured namespace, values keep their type across write and read.",
	),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// run the root hook first (env, flags, log level)
		if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
			return err
		}

		var err error
		mgr, err = util.GetManager()
		return err
	},
}

func init() {
	util.SetupManagerFlags(KeyValueCommands)

	KeyValueCommands.AddCommand(
		addCmd,
		updateCmd,
		upsertCmd,
		getCmd,
		hasCmd,
		delCmd,
		clearCmd,
		clearAllCmd,
		perfCmd,
	)
}
