// Package config loads the server's static YAML configuration, following
// the teacher's Default()/Load(path) pattern for its own game-server config.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultPort = 2197

// Server is the static configuration for one vangers-srv process.
type Server struct {
	Port string `yaml:"port"`

	// MaxConnections bounds the number of simultaneously accepted TCP
	// connections; zero means unbounded.
	MaxConnections int `yaml:"max_connections"`

	// SuppressServerTimeLogs and SuppressGamesListLogs gate the per-packet
	// slog.Debug call for SERVER_TIME_QUERY/GAMES_LIST_QUERY traffic,
	// which would otherwise dominate debug-level logs (§6).
	SuppressServerTimeLogs bool `yaml:"suppress_server_time_logs"`
	SuppressGamesListLogs  bool `yaml:"suppress_games_list_logs"`

	// MetricsAddr, when non-empty, is the listen address for the
	// Prometheus /metrics endpoint. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`

	// VanWarMaxTimeBugCompat reproduces the source server's max_time
	// quirk (see internal/game.Quirks) when true.
	VanWarMaxTimeBugCompat bool `yaml:"van_war_max_time_bug_compat"`
}

// Default returns the documented baseline configuration.
func Default() Server {
	return Server{
		Port:                   strconv.Itoa(defaultPort),
		MaxConnections:         256,
		SuppressServerTimeLogs: true,
		SuppressGamesListLogs:  true,
		VanWarMaxTimeBugCompat: true,
	}
}

// Load reads YAML configuration from path, falling back to Default()
// fields for anything the file omits, and to the full Default() when path
// does not exist.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Server{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
