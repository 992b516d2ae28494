package util

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ValentinKolb/rKV/lib/lockmgr"
	"github.com/ValentinKolb/rKV/lib/logger"
	"github.com/ValentinKolb/rKV/lib/manager"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/mstore"
	"github.com/ValentinKolb/rKV/lib/store/rstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the backend connection flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "redis-endpoints"
	cmd.PersistentFlags().String(key, "localhost:6379", WrapString("The address of the Redis backend. Multiple endpoints can be specified as a comma-separated list for cluster mode"))

	key = "redis-password"
	cmd.PersistentFlags().String(key, "", WrapString("The password of the Redis backend"))

	key = "redis-db"
	cmd.PersistentFlags().Int(key, 0, WrapString("The logical Redis database index"))

	key = "redis-timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the Redis client"))

	key = "redis-pool-size"
	cmd.PersistentFlags().Int(key, 10, WrapString("Connections per Redis endpoint"))
}

// SetupManagerFlags adds the backend and manager flags to a command
func SetupManagerFlags(cmd *cobra.Command) {
	SetupStoreFlags(cmd)

	key := "namespace"
	cmd.PersistentFlags().String(key, "default", WrapString("The namespace scoping all keys of this invocation"))

	key = "default-expiry-ms"
	cmd.PersistentFlags().Int(key, 0, WrapString("Expiry applied to every written entry in milliseconds (0 = entries never expire)"))

	key = "max-retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to retry transient backend failures"))

	key = "locking"
	cmd.PersistentFlags().Bool(key, false, WrapString("Whether to serialize mutations per key through the distributed lock"))

	key = "lock-ttl-ms"
	cmd.PersistentFlags().Int(key, 5000, WrapString("Maximum lock hold duration in milliseconds (required with --locking)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("rkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindFlags makes the command's flags (own and inherited) visible to viper
func BindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.InheritedFlags())
}

// GetStoreConfig reads the Redis backend configuration from viper
func GetStoreConfig() *rstore.Config {
	return &rstore.Config{
		Endpoints:     strings.Split(viper.GetString("redis-endpoints"), ","),
		Password:      viper.GetString("redis-password"),
		DB:            viper.GetInt("redis-db"),
		TimeoutSecond: viper.GetInt("redis-timeout"),
		PoolSize:      viper.GetInt("redis-pool-size"),
	}
}

// GetStore creates the backend store based on configuration
func GetStore() (store.IStore, error) {
	switch backend := viper.GetString("backend"); backend {
	case "redis":
		conf := GetStoreConfig()
		s := rstore.NewRedisStore(conf)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.TimeoutSecond)*time.Second)
		defer cancel()
		if err := rstore.Ping(ctx, s); err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return mstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s. must be one of redis, memory", backend)
	}
}

// GetManager creates a manager (with or without locking) based on configuration
func GetManager() (manager.IManager, error) {
	s, err := GetStore()
	if err != nil {
		return nil, err
	}

	conf := manager.Config{
		Namespace:     viper.GetString("namespace"),
		DefaultExpiry: time.Duration(viper.GetInt("default-expiry-ms")) * time.Millisecond,
		MaxRetries:    viper.GetInt("max-retries"),
		Logger:        logger.Get("manager"),
	}

	if !viper.GetBool("locking") {
		return manager.NewManager(s, conf)
	}

	return manager.NewLockedManager(
		s,
		lockmgr.NewLockManager(s),
		conf,
		manager.LockConfig{
			DefaultTTL: time.Duration(viper.GetInt("lock-ttl-ms")) * time.Millisecond,
		},
	)
}
