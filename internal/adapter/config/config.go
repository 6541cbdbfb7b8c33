package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/govalues/decimal"
	"github.com/joho/godotenv"
)

type Config struct {
	App          *App
	Database     *Database
	HTTP         *HTTP
	Auth         *Auth
	Solana       *Solana
	Verification *Verification
	Vendor       *Vendor
	Reconcile    *Reconcile
	Worker       *Worker
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel    string `env:"LOG_LEVEL"`
	Mode        string `env:"APP_MODE"`
	OrderPrefix string `env:"ORDER_PREFIX" envDefault:"KMY"`
}

type Database struct {
	DSN      string `env:"DATABASE_URI"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
	// PublicURL is the externally reachable base used for the vendor callback URL.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
}

type Auth struct {
	// TokenKey is a hex V4 symmetric key. A random key is generated when empty.
	TokenKey string `env:"TOKEN_KEY"`
	AdminKey string `env:"ADMIN_KEY"`
}

type Solana struct {
	RPCURL         string        `env:"SOLANA_RPC_URL" envDefault:"https://api.mainnet-beta.solana.com"`
	PlatformWallet string        `env:"PLATFORM_WALLET_ADDRESS"`
	Timeout        time.Duration `env:"SOLANA_RPC_TIMEOUT" envDefault:"30s"`
	SignatureLimit int           `env:"SOLANA_SIGNATURE_LIMIT" envDefault:"100"`
	TokenMints     TokenMints    `env:"SOLANA_TOKEN_MINTS" envDefault:"USDC:EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v,USDT:Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"`
}

// TokenMints maps SPL token symbols to mint addresses, read from "USDC:mint,USDT:mint".
type TokenMints map[string]string

func (m *TokenMints) UnmarshalText(text []byte) error {
	mints := TokenMints{}
	for _, pair := range strings.Split(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		symbol, mint, ok := strings.Cut(pair, ":")
		symbol, mint = strings.TrimSpace(symbol), strings.TrimSpace(mint)
		if !ok || symbol == "" || mint == "" {
			return fmt.Errorf("invalid token mint %q, want SYMBOL:mint", pair)
		}
		mints[symbol] = mint
	}
	*m = mints
	return nil
}

type Verification struct {
	Retries         int           `env:"VERIFY_RETRIES" envDefault:"3"`
	RetryDelay      time.Duration `env:"VERIFY_RETRY_DELAY" envDefault:"2s"`
	InitialDelay    time.Duration `env:"VERIFY_INITIAL_DELAY" envDefault:"10s"`
	NativeTolerance string        `env:"VERIFY_NATIVE_TOLERANCE" envDefault:"0.01"`
	TokenTolerance  string        `env:"VERIFY_TOKEN_TOLERANCE" envDefault:"0.000001"`
	CacheTTL        time.Duration `env:"VERIFY_CACHE_TTL" envDefault:"5m"`
	MaxAttempts     int           `env:"VERIFY_MAX_ATTEMPTS" envDefault:"5"`
}

// Tolerances returns the native and token tolerances as decimals.
func (v *Verification) Tolerances() (decimal.Decimal, decimal.Decimal, error) {
	native, err := decimal.Parse(v.NativeTolerance)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("native tolerance: %w", err)
	}
	token, err := decimal.Parse(v.TokenTolerance)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("token tolerance: %w", err)
	}
	return native, token, nil
}

type Vendor struct {
	BaseURL     string        `env:"VENDOR_URL"`
	MerchantID  string        `env:"VENDOR_MERCHANT_ID"`
	SecretKey   string        `env:"VENDOR_SECRET_KEY"`
	APIKey      string        `env:"VENDOR_API_KEY"`
	XMerchant   string        `env:"VENDOR_X_MERCHANT"`
	CallbackKey string        `env:"VENDOR_CALLBACK_KEY"`
	Timeout     time.Duration `env:"VENDOR_TIMEOUT" envDefault:"20s"`
	MaxAttempts int           `env:"FULFILL_MAX_ATTEMPTS" envDefault:"3"`
	// ValidateAccounts checks the game account with the vendor before an order is stored.
	ValidateAccounts bool `env:"VENDOR_VALIDATE_ACCOUNTS" envDefault:"false"`
}

type Reconcile struct {
	Interval  time.Duration `env:"RECONCILE_INTERVAL" envDefault:"3m"`
	MinAge    time.Duration `env:"RECONCILE_MIN_AGE" envDefault:"5m"`
	BatchSize int           `env:"RECONCILE_BATCH_SIZE" envDefault:"50"`
	Throttle  time.Duration `env:"RECONCILE_THROTTLE" envDefault:"500ms"`
	// MaxAge fails orders the vendor still has no record of this long after creation.
	MaxAge time.Duration `env:"RECONCILE_MAX_AGE" envDefault:"24h"`
}

type Worker struct {
	Count        int           `env:"WORKER_COUNT" envDefault:"5"`
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"1s"`
}

var ErrMissingConfig = errors.New("missing required configuration")

// NewConfig reads flags from args, then an optional .env file, then the environment.
func NewConfig(args []string) (*Config, error) {
	var db Database
	var http HTTP
	var app App
	var auth Auth
	var solana Solana
	var verification Verification
	var vendor Vendor
	var reconcile Reconcile
	var worker Worker

	fset := flag.NewFlagSet("gamecredit", flag.ContinueOnError)
	fset.StringVar(&db.DSN, "d", "", "Database string")
	fset.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	fset.StringVar(&app.LogLevel, "l", `error`, "Log level")
	fset.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	fset.StringVar(&solana.PlatformWallet, "w", "", "Platform wallet address")
	envFile := fset.String("e", ".env", "Env file")
	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}

	sections := []struct {
		name string
		v    any
	}{
		{"database", &db},
		{"http", &http},
		{"app", &app},
		{"auth", &auth},
		{"solana", &solana},
		{"verification", &verification},
		{"vendor", &vendor},
		{"reconcile", &reconcile},
		{"worker", &worker},
	}
	for _, s := range sections {
		if err := env.Parse(s.v); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", s.name, err)
		}
	}

	if db.DSN == "" {
		return nil, fmt.Errorf("%w: DATABASE_URI", ErrMissingConfig)
	}
	if solana.PlatformWallet == "" {
		return nil, fmt.Errorf("%w: PLATFORM_WALLET_ADDRESS", ErrMissingConfig)
	}
	if vendor.CallbackKey == "" {
		return nil, fmt.Errorf("%w: VENDOR_CALLBACK_KEY", ErrMissingConfig)
	}
	if _, _, err := verification.Tolerances(); err != nil {
		return nil, err
	}

	config := Config{
		App:          &app,
		Database:     &db,
		HTTP:         &http,
		Auth:         &auth,
		Solana:       &solana,
		Verification: &verification,
		Vendor:       &vendor,
		Reconcile:    &reconcile,
		Worker:       &worker,
	}

	return &config, nil
}
