package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
// The struct is kept flat (rather than nested per concern) so every field
// maps to exactly one "DNS_"-prefixed environment variable without a
// section delimiter to get wrong.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel is one of "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ListenAddr is the UDP address the dispatcher binds for client
	// queries.
	// default: 0.0.0.0:8000
	ListenAddr string `koanf:"listen_addr" validate:"required,ip_port"`

	// BootstrapServer is the fixed name server address used to start
	// every resolution walk when no delegation is already known.
	// default: 192.203.230.10:53
	BootstrapServer string `koanf:"resolver_bootstrap" validate:"required,ip_port"`

	// UpstreamTimeoutSeconds bounds how long a single per-hop query
	// waits for a response before being retried or abandoned.
	// default: 2
	UpstreamTimeoutSeconds int `koanf:"upstream_timeout_seconds" validate:"required,gte=1"`

	// RetryCount is the number of additional attempts made against the
	// current hop before the resolver gives up on it.
	// default: 2
	RetryCount int `koanf:"retry_count" validate:"gte=0"`

	// MaxIterations bounds the number of referral hops a single Resolve
	// call may walk before failing with ErrResolutionExhausted.
	// default: 16
	MaxIterations int `koanf:"max_iterations" validate:"required,gte=1"`

	// MaxRecursionDepth bounds the nesting depth of glue-less delegation
	// lookups (a Resolve call within a Resolve call).
	// default: 8
	MaxRecursionDepth int `koanf:"max_recursion_depth" validate:"required,gte=1"`
}

// DEFAULT_APP_CONFIG defines the default application configuration
// settings for the resolver.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:                    "prod",
	LogLevel:               "info",
	ListenAddr:             "0.0.0.0:8000",
	BootstrapServer:        "192.203.230.10:53",
	UpstreamTimeoutSeconds: 2,
	RetryCount:             2,
	MaxIterations:          16,
	MaxRecursionDepth:      8,
}

// validIPPort validates whether the provided field value is a valid IP address and port combination.
// It expects the value to be in the format "IP:Port". The function returns true if the IP address
// is valid and both the IP and port are non-empty; otherwise, it returns false.
func validIPPort(fl validator.FieldLevel) bool {
	// stringify the field value to get the IP:Port format.
	addr := fl.Field().String()
	// Split the address into IP and port.
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	// Check if the IP address is valid.
	if net.ParseIP(ip) == nil {
		return false
	}
	// Check if the port is a valid number between 1 and 65535.
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// envLoader is a function that loads environment variables with the
// prefix "DNS_". It lowercases the key and strips the prefix, leaving the
// remaining underscores intact since AppConfig is flat -- every koanf tag
// already matches its corresponding env var suffix exactly. It can be
// mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf instance
// using the structs provider and the DEFAULT_APP_CONFIG struct. It returns an error
// if loading fails.
var defaultLoader = func(k *koanf.Koanf) error {
	// Load default values using structs provider.
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers a custom validation function "ip_port" with the provided validator.
// It associates the "ip_port" tag with the validIPPort validation logic.
// Returns an error if registration fails.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// Load environment variables with prefix "DNS_", using koanf/providers/env/v2 and Opt pattern.
	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Register the custom validation function for IP:Port format.
	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
