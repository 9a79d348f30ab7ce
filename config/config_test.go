package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--store", "memory",
		"--secret-key", "0123456789abcdef",
		"--csrf-enabled=false",
		"--token-ttl", "30m",
		"--allowed-origins", "https://a.example, https://b.example,",
	})
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.Store)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, int64(20<<10), cfg.BodyLimit)
	require.Equal(t, "ZAR", cfg.DefaultCurrency)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BANK_STORE", "memory")
	t.Setenv("BANK_SECRET_KEY", "0123456789abcdef")
	t.Setenv("BANK_CSRF_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("BANK_LOGIN_RATE_LIMIT", "3")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.True(t, cfg.CSRFEnabled)
	require.Equal(t, 3, cfg.LoginRateLimit)
}

func TestValidate(t *testing.T) {
	_, err := Load([]string{"--secret-key", "short"})
	require.Error(t, err)
	require.ErrorContains(t, err, "secret-key")
	require.ErrorContains(t, err, "mongo-uri")
	require.ErrorContains(t, err, "csrf-key")

	_, err = Load([]string{
		"--store", "memory",
		"--secret-key", "0123456789abcdef",
		"--csrf-enabled=false",
		"--seed-admin-username", "root",
	})
	require.ErrorContains(t, err, "seed-admin")
}

func TestValidateRateLimits(t *testing.T) {
	base := []string{
		"--store", "memory",
		"--secret-key", "0123456789abcdef",
		"--csrf-enabled=false",
	}

	_, err := Load(append(base, "--login-rate-limit=0"))
	require.ErrorContains(t, err, "login-rate-limit must be positive")

	_, err = Load(append(base, "--rate-limit=-5", "--register-rate-limit=0"))
	require.Error(t, err)
	require.Equal(t, []string{
		"rate-limit must be positive",
		"register-rate-limit must be positive",
	}, strings.Split(err.Error(), "\n"))

	t.Setenv("BANK_LOGIN_RATE_LIMIT", "0")
	_, err = Load(base)
	require.ErrorContains(t, err, "login-rate-limit must be positive")
}

func TestACLOverride(t *testing.T) {
	cfg := &Config{}
	model, policy, err := cfg.ACL()
	require.NoError(t, err)
	require.Contains(t, model, "[matchers]")
	require.Contains(t, policy, "g, admin, employee")

	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(path, []byte("p, admin, staff, manage\n"), 0o600))

	cfg.ACLPolicyFile = path
	_, policy, err = cfg.ACL()
	require.NoError(t, err)
	require.Equal(t, "p, admin, staff, manage\n", policy)

	cfg.ACLModelFile = filepath.Join(t.TempDir(), "missing.conf")
	_, _, err = cfg.ACL()
	require.Error(t, err)
}
