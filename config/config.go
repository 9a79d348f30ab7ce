package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/ff"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const EnvVarPrefix = "BANK"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       int64

	Store        string
	MongoURI     string
	DatabaseName string
	MongoTimeout time.Duration

	SecretKey string
	TokenTTL  time.Duration

	CSRFEnabled    bool
	CSRFKey        string
	SecureCookies  bool
	AllowedOrigins []string

	GeneralRateLimit  int
	LoginRateLimit    int
	RegisterRateLimit int

	DefaultCurrency string

	LogLevel  string
	LogFormat string

	ACLModelFile  string
	ACLPolicyFile string

	SeedAdminUsername string
	SeedAdminPassword string
}

// Load parses the flags in args. Each flag may also be given as an environment
// variable with the BANK_ prefix, e.g. --mongo-uri as BANK_MONGO_URI; flags win.
//
// Example .env file
//
//	BANK_MONGO_URI=mongodb://localhost:27017
//	BANK_SECRET_KEY=change-me-to-something-long
//	BANK_CSRF_KEY=32-byte-long-auth-key-goes-here!
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("staff-portal", flag.ContinueOnError)

	var (
		cfg     Config
		origins string
	)

	fs.StringVar(&cfg.Addr, "addr", ":3000", "address to listen on")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", 10*time.Second, "http read timeout")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", 15*time.Second, "http write timeout")
	fs.DurationVar(&cfg.IdleTimeout, "idle-timeout", 60*time.Second, "http idle timeout")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	fs.Int64Var(&cfg.BodyLimit, "body-limit", 20<<10, "maximum request body in bytes")

	fs.StringVar(&cfg.Store, "store", StoreMongo, "document store: mongo or memory")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "", "mongodb connection string")
	fs.StringVar(&cfg.DatabaseName, "mongo-db", "bank", "mongodb database name")
	fs.DurationVar(&cfg.MongoTimeout, "mongo-timeout", 10*time.Second, "mongodb connect timeout")

	fs.StringVar(&cfg.SecretKey, "secret-key", "", "HMAC secret for bearer tokens")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", time.Hour, "bearer token lifetime")

	fs.BoolVar(&cfg.CSRFEnabled, "csrf-enabled", true, "require anti-forgery tokens on unsafe methods")
	fs.StringVar(&cfg.CSRFKey, "csrf-key", "", "32 byte key authenticating the anti-forgery cookie")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "mark cookies Secure")
	fs.StringVar(&origins, "allowed-origins", "https://localhost:5173", "comma separated CORS origins")

	fs.IntVar(&cfg.GeneralRateLimit, "rate-limit", 200, "requests per client per 15 minutes")
	fs.IntVar(&cfg.LoginRateLimit, "login-rate-limit", 5, "login attempts per client per 10 minutes")
	fs.IntVar(&cfg.RegisterRateLimit, "register-rate-limit", 10, "registrations per client per hour")

	fs.StringVar(&cfg.DefaultCurrency, "default-currency", "ZAR", "currency used when a payment names none")

	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "text or json")

	fs.StringVar(&cfg.ACLModelFile, "acl-model-file", "", "path to a casbin model overriding the built-in one")
	fs.StringVar(&cfg.ACLPolicyFile, "acl-policy-file", "", "path to a casbin policy overriding the built-in one")

	fs.StringVar(&cfg.SeedAdminUsername, "seed-admin-username", "", "admin created at startup when none exists")
	fs.StringVar(&cfg.SeedAdminPassword, "seed-admin-password", "", "password for the seeded admin")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvVarPrefix)); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = splitCSV(origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.SecretKey) < 16 {
		errs = append(errs, errors.New("secret-key must be at least 16 bytes"))
	}

	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("mongo-uri is required for the mongo store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}

	if c.CSRFEnabled && len(c.CSRFKey) != 32 {
		errs = append(errs, errors.New("csrf-key must be exactly 32 bytes when csrf is enabled"))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token-ttl must be positive"))
	}

	for _, l := range []struct {
		flag  string
		value int
	}{
		{"rate-limit", c.GeneralRateLimit},
		{"login-rate-limit", c.LoginRateLimit},
		{"register-rate-limit", c.RegisterRateLimit},
	} {
		if l.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", l.flag))
		}
	}

	if (c.SeedAdminUsername == "") != (c.SeedAdminPassword == "") {
		errs = append(errs, errors.New("seed-admin-username and seed-admin-password must be set together"))
	}

	return errors.Join(errs...)
}

func ConnectToMongo(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
