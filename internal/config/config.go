package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by the bridge.
const (
	EnvHost     = "MYSQL_HOST"
	EnvPort     = "MYSQL_PORT"
	EnvUser     = "MYSQL_USER"
	EnvPassword = "MYSQL_PASSWORD"
	EnvDatabase = "MYSQL_DATABASE"

	EnvTransport   = "MCP_TRANSPORT"
	EnvHTTPAddress = "MCP_HTTP_ADDRESS"
	EnvLogLevel    = "MCP_LOG_LEVEL"
	EnvLogFormat   = "MCP_LOG_FORMAT"
	EnvTelemetry   = "MCP_TELEMETRY"
)

const (
	DefaultPort        = 3306
	DefaultTransport   = TransportStdio
	DefaultHTTPAddress = ":8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Supported transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Connection holds the settings needed to reach the MySQL server.
type Connection struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Address returns host:port for the tcp dialer.
func (c *Connection) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Config contains the process level settings. The connection settings are
// not part of it: they are read on every connect attempt by LoadConnection.
type Config struct {
	Transport   string
	HTTPAddress string
	LogLevel    string
	LogFormat   string
	Telemetry   bool
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MissingError reports required variables that are absent or empty.
type MissingError struct {
	Variables []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Variables, ", ")
}

// InvalidError reports a variable whose value cannot be used.
type InvalidError struct {
	Variable string
	Value    string
	Reason   string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Variable, e.Reason)
}

// Load reads the process configuration from the environment.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup LookupFunc) (*Config, error) {
	cfg := &Config{
		Transport:   valueOr(lookup, EnvTransport, DefaultTransport),
		HTTPAddress: valueOr(lookup, EnvHTTPAddress, DefaultHTTPAddress),
		LogLevel:    valueOr(lookup, EnvLogLevel, DefaultLogLevel),
		LogFormat:   valueOr(lookup, EnvLogFormat, DefaultLogFormat),
		Telemetry:   true,
	}

	if raw, ok := lookup(EnvTelemetry); ok && strings.TrimSpace(raw) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, &InvalidError{Variable: EnvTelemetry, Value: raw, Reason: "expected a boolean"}
		}
		cfg.Telemetry = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that may also come from command line flags.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return &InvalidError{Variable: EnvTransport, Value: c.Transport, Reason: "supported transports are stdio and http"}
	}
	if c.Transport == TransportHTTP && c.HTTPAddress == "" {
		return &InvalidError{Variable: EnvHTTPAddress, Value: c.HTTPAddress, Reason: "an address is required for the http transport"}
	}
	return nil
}

// LoadConnection reads the MYSQL_* variables. Host, user and database are
// mandatory; password defaults to empty and port to 3306.
func LoadConnection() (*Connection, error) {
	return LoadConnectionFrom(os.LookupEnv)
}

// LoadConnectionFrom is LoadConnection over an arbitrary lookup.
func LoadConnectionFrom(lookup LookupFunc) (*Connection, error) {
	conn := &Connection{
		Host:     value(lookup, EnvHost),
		User:     value(lookup, EnvUser),
		Password: value(lookup, EnvPassword),
		Database: value(lookup, EnvDatabase),
		Port:     DefaultPort,
	}

	var missing []string
	if conn.Host == "" {
		missing = append(missing, EnvHost)
	}
	if conn.User == "" {
		missing = append(missing, EnvUser)
	}
	if conn.Database == "" {
		missing = append(missing, EnvDatabase)
	}
	if len(missing) > 0 {
		return nil, &MissingError{Variables: missing}
	}

	if raw := value(lookup, EnvPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, &InvalidError{Variable: EnvPort, Value: raw, Reason: "expected a tcp port number"}
		}
		conn.Port = port
	}

	return conn, nil
}

// ConnectionAttrs describes which MYSQL_* variables are set, for diagnostics.
// The password is never included.
func ConnectionAttrs(lookup LookupFunc) []any {
	password := "not set"
	if value(lookup, EnvPassword) != "" {
		password = "***"
	}
	return []any{
		slog.String(EnvHost, value(lookup, EnvHost)),
		slog.String(EnvPort, value(lookup, EnvPort)),
		slog.String(EnvUser, value(lookup, EnvUser)),
		slog.String(EnvDatabase, value(lookup, EnvDatabase)),
		slog.String(EnvPassword, password),
	}
}

func value(lookup LookupFunc, key string) string {
	v, _ := lookup(key)
	return strings.TrimSpace(v)
}

func valueOr(lookup LookupFunc, key, def string) string {
	if v := value(lookup, key); v != "" {
		return v
	}
	return def
}
