package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/codec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// opCtx returns a context bounded by the configured backend timeout
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(viper.GetInt("redis-timeout"))*time.Second)
}

// parseValue turns a CLI argument into a typed value. Arguments that parse
// as tagged JSON keep their type (numbers, booleans, big integers, blobs,
// objects), everything else is stored as a plain string.
func parseValue(arg string) any {
	if value, err := codec.NewTaggedJSONCodec().Parse([]byte(arg)); err == nil {
		return value
	}
	return arg
}

var addCmd = &cobra.Command{
	Use:   "add [key] [value]",
	Short: "Create a key, failing if it already exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		if err := mgr.Add(ctx, args[0], parseValue(args[1])); err != nil {
			return err
		}
		fmt.Printf("added key=%s\n", args[0])
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [key] [value]",
	Short: "Overwrite a key, failing if it does not exist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		if err := mgr.Update(ctx, args[0], parseValue(args[1])); err != nil {
			return err
		}
		fmt.Printf("updated key=%s\n", args[0])
		return nil
	},
}

var upsertCmd = &cobra.Command{
	Use:   "upsert [key] [value]",
	Short: "Write a key regardless of whether it exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		if err := mgr.Upsert(ctx, args[0], parseValue(args[1])); err != nil {
			return err
		}
		fmt.Printf("upserted key=%s\n", args[0])
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Read a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		value, loaded, err := mgr.Get(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("key=%s, found=%v, value=%v (%T)\n", args[0], loaded, value, value)
		return nil
	},
}

var hasCmd = &cobra.Command{
	Use:   "has [key]",
	Short: "Check whether a key exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		loaded, err := mgr.Has(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("key=%s, found=%v\n", args[0], loaded)
		return nil
	},
}

var delCmd = &cobra.Command{
	Use:   "del [key]",
	Short: "Delete a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		removed, err := mgr.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("key=%s, removed=%v\n", args[0], removed)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every key in the configured namespace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		if err := mgr.ClearNamespace(ctx); err != nil {
			return err
		}
		fmt.Printf("cleared namespace=%s\n", viper.GetString("namespace"))
		return nil
	},
}

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Delete every key in the backend, all namespaces included",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opCtx()
		defer cancel()

		if !viper.GetBool("yes") {
			return fmt.Errorf("clear-all wipes the whole backend, pass --yes to confirm")
		}
		if err := mgr.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Println("cleared all namespaces")
		return nil
	},
}

func init() {
	clearAllCmd.Flags().Bool("yes", false, util.WrapString("Confirm wiping the whole backend"))
}
