package rstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// --------------------------------------------------------------------------
// Redis client configuration struct
// --------------------------------------------------------------------------

// Config holds all connection parameters for the Redis backend.
type Config struct {
	// Endpoints is the list of Redis server addresses. A single endpoint
	// connects to one server, multiple endpoints to a cluster.
	Endpoints []string
	// Password is the AUTH password, empty for no authentication.
	Password string
	// DB is the logical database index (ignored in cluster mode).
	DB int
	// TimeoutSecond is the dial/read/write timeout of the client.
	TimeoutSecond int
	// PoolSize is the number of connections per endpoint.
	PoolSize int
}

// DefaultConfig returns a config for a local single-node Redis server.
func DefaultConfig() *Config {
	return &Config{
		Endpoints:     []string{"localhost:6379"},
		DB:            0,
		TimeoutSecond: 10,
		PoolSize:      10,
	}
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Redis Backend")
	addField("Database", strconv.Itoa(c.DB))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Pool Size", strconv.Itoa(c.PoolSize))
	if c.Password != "" {
		addField("Password", "***")
	}

	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}

// createClient creates the go-redis client for the given configuration
func createClient(c *Config) redis.UniversalClient {
	timeout := time.Duration(c.TimeoutSecond) * time.Second

	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        c.Endpoints,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     c.PoolSize,
	})
}
