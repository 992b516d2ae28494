package lock

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/lockmgr"
	"github.com/spf13/cobra"
)

var (
	locks      lockmgr.ILockManager
	acquireTTL uint64

	// LockCommands represents the lock command group
	LockCommands = &cobra.Command{
		Use:               "lock",
		Short:             "Perform lock operations",
		PersistentPreRunE: setupLockManager,
	}

	// acquireCmd represents the acquire command
	acquireCmd = &cobra.Command{
		Use:   "acquire [resource]",
		Short: "Acquire a lock",
		Args:  cobra.ExactArgs(1),
		RunE:  runAcquire,
	}

	// releaseCmd represents the release command
	releaseCmd = &cobra.Command{
		Use:   "release [resource] [ownerID]",
		Short: "Release a previously acquired lock",
		Long:  "Release a lock using the resource name and owner ID. The owner ID is the hex string returned by the acquire command.",
		Args:  cobra.ExactArgs(2),
		RunE:  runRelease,
	}
)

func init() {
	// Add subcommands to lock command
	LockCommands.AddCommand(acquireCmd)
	LockCommands.AddCommand(releaseCmd)

	// Add the backend connection flags to the lock command
	util.SetupStoreFlags(LockCommands)

	// Add flags specific to acquire
	acquireCmd.Flags().Uint64Var(&acquireTTL, "ttl", 30, "Lock timeout in seconds after which the lock expires on its own")
}

// setupLockManager initializes the lock manager on top of the configured store
func setupLockManager(cmd *cobra.Command, args []string) error {
	// run the root hook first (env, flags, log level)
	if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
		return err
	}

	s, err := util.GetStore()
	if err != nil {
		return err
	}

	locks = lockmgr.NewLockManager(s)
	return nil
}

// runAcquire handles the acquire lock command
func runAcquire(_ *cobra.Command, args []string) error {
	resource := args[0]

	// Attempt to acquire the lock
	acquired, ownerID, err := locks.AcquireLock(context.Background(), resource, time.Duration(acquireTTL)*time.Second)

	if err != nil {
		return fmt.Errorf("failed to acquire lock: %v", err)
	}

	if !acquired {
		fmt.Printf("acquired=false\n")
		return nil
	}

	// Convert owner ID to hex string for display
	ownerIDHex := hex.EncodeToString(ownerID)
	fmt.Printf("acquired=true, ownerId=%s\n", ownerIDHex)

	return nil
}

// runRelease handles the release lock command
func runRelease(_ *cobra.Command, args []string) error {
	resource := args[0]
	ownerIDHex := args[1]

	// Convert hex string owner ID back to bytes
	ownerID, err := hex.DecodeString(ownerIDHex)
	if err != nil {
		return fmt.Errorf("invalid owner ID format: %v", err)
	}

	// Attempt to release the lock
	released, err := locks.ReleaseLock(context.Background(), resource, ownerID)

	if err != nil {
		return fmt.Errorf("failed to release lock: %v", err)
	}

	fmt.Printf("released=%v\n", released)

	return nil
}
