package config

import (
	"errors"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DNS_ENV", "DNS_LOG_LEVEL", "DNS_LISTEN_ADDR", "DNS_RESOLVER_BOOTSTRAP",
		"DNS_UPSTREAM_TIMEOUT_SECONDS", "DNS_RETRY_COUNT",
		"DNS_MAX_ITERATIONS", "DNS_MAX_RECURSION_DEPTH",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8000", cfg.ListenAddr)
	assert.Equal(t, "192.203.230.10:53", cfg.BootstrapServer)
	assert.Equal(t, 2, cfg.UpstreamTimeoutSeconds)
	assert.Equal(t, 2, cfg.RetryCount)
	assert.Equal(t, 16, cfg.MaxIterations)
	assert.Equal(t, 8, cfg.MaxRecursionDepth)
}

func TestLoad_ValidOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_ENV", "dev")
	t.Setenv("DNS_LOG_LEVEL", "debug")
	t.Setenv("DNS_LISTEN_ADDR", "127.0.0.1:9053")
	t.Setenv("DNS_RESOLVER_BOOTSTRAP", "198.41.0.4:53")
	t.Setenv("DNS_UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("DNS_RETRY_COUNT", "1")
	t.Setenv("DNS_MAX_ITERATIONS", "32")
	t.Setenv("DNS_MAX_RECURSION_DEPTH", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9053", cfg.ListenAddr)
	assert.Equal(t, "198.41.0.4:53", cfg.BootstrapServer)
	assert.Equal(t, 5, cfg.UpstreamTimeoutSeconds)
	assert.Equal(t, 1, cfg.RetryCount)
	assert.Equal(t, 32, cfg.MaxIterations)
	assert.Equal(t, 4, cfg.MaxRecursionDepth)
}

func TestLoad_WhenKoanfDefaultLoadFails(t *testing.T) {
	clearEnv(t)
	orig := defaultLoader
	defaultLoader = func(k *koanf.Koanf) error {
		return errors.New("mocked error")
	}
	defer func() { defaultLoader = orig }()

	_, err := Load()
	assert.ErrorContains(t, err, "mocked error")
}

func TestLoad_WhenKoanfEnvLoadFails(t *testing.T) {
	clearEnv(t)
	orig := envLoader
	envLoader = func(k *koanf.Koanf) error {
		return errors.New("mocked error")
	}
	defer func() { envLoader = orig }()

	_, err := Load()
	assert.ErrorContains(t, err, "mocked error")
}

func TestLoad_RegisterValidationFails(t *testing.T) {
	clearEnv(t)
	orig := registerValidation
	registerValidation = func(v *validator.Validate) error {
		return errors.New("mocked validation error")
	}
	defer func() { registerValidation = orig }()

	_, err := Load()
	assert.ErrorContains(t, err, "mocked validation error")
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_LOG_LEVEL", "trace")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidListenAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_LISTEN_ADDR", "not_an_addr")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidBootstrap(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_RESOLVER_BOOTSTRAP", "also_not_an_addr")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidMaxIterations(t *testing.T) {
	clearEnv(t)
	t.Setenv("DNS_MAX_ITERATIONS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidIPPort(t *testing.T) {
	cases := []struct {
		input    string
		expected bool
	}{
		{"1.2.3.4:53", true},
		{"127.0.0.1:5353", true},
		{"::1:53", false}, // missing brackets for IPv6
		{"[::1]:53", true},
		{"192.168.1.1:", false},
		{":53", false},
		{"not_an_ip:53", false},
		{"1.2.3.4:notaport", false},
		{"", false},
		{"1.2.3.4", false},
		{"[::1]", false},
	}

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("ip_port", validIPPort))

	for _, tc := range cases {
		type S struct {
			Addr string `validate:"ip_port"`
		}
		err := validate.Struct(S{Addr: tc.input})
		if tc.expected {
			assert.NoError(t, err, "validIPPort(%q)", tc.input)
		} else {
			assert.Error(t, err, "validIPPort(%q)", tc.input)
		}
	}
}

func TestDefaultLoader_LoadsDefaults(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, defaultLoader(k))

	var cfg AppConfig
	require.NoError(t, k.Unmarshal("", &cfg))
	assert.Equal(t, DEFAULT_APP_CONFIG, cfg)
}

func TestDefaultLoader_ErrorPropagation(t *testing.T) {
	orig := DEFAULT_APP_CONFIG
	defer func() { DEFAULT_APP_CONFIG = orig }()

	DEFAULT_APP_CONFIG = AppConfig{
		Env:                    "prod",
		LogLevel:               "info",
		ListenAddr:             "not_a_valid_ip_port",
		BootstrapServer:        "198.41.0.4:53",
		UpstreamTimeoutSeconds: 2,
		MaxIterations:          16,
		MaxRecursionDepth:      8,
	}

	k := koanf.New(".")
	require.NoError(t, defaultLoader(k))

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, validate.RegisterValidation("ip_port", validIPPort))
	assert.Error(t, validate.Struct(&cfg))
}
