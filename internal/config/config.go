package config // package config loads application configuration from environment variables

import (
    "log"  // log is used to report configuration errors and halt execution
    "os"   // os provides access to environment variables
    "time" // time parses the duration-valued settings
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Strings hold identifiers and secrets,
// durations hold the booking engine tuning knobs.
type Config struct {
    Env       string // application environment (e.g. "dev", "prod")
    Port      string // HTTP port to listen on
    DBUser    string // database username
    DBPass    string // database password (optional)
    DBHost    string // database host address
    DBPort    string // database port number
    DBName    string // database name
    JWTSecret string // secret the external auth service signs tokens with

    AvailabilityTTL time.Duration // staleness window of the in-process availability cache
    SweepInterval   time.Duration // how often the background sweeper expires overdue holds

    MidtransServerKey  string // payment gateway server key; empty disables automatic refunds
    MidtransProduction bool   // true targets the production gateway, false the sandbox
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.  The
// booking engine durations fall back to their built-in defaults when
// unset.
func Load() Config {
    return Config{
        Env:       must("APP_ENV"),      // environment (dev/test/prod)
        Port:      must("APP_PORT"),     // port to bind the HTTP server
        DBUser:    must("DB_USER"),      // database user
        DBPass:    os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:    must("DB_HOST"),      // database host
        DBPort:    must("DB_PORT"),      // database port
        DBName:    must("DB_NAME"),      // database name
        JWTSecret: must("JWT_SECRET"),   // secret used to verify bearer tokens

        AvailabilityTTL: envDur("AVAILABILITY_CACHE_TTL", 0), // 0 lets the engine use its default
        SweepInterval:   envDur("HOLD_SWEEP_INTERVAL", 0),    // 0 lets the sweeper use its default

        MidtransServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"), // optional; refunds stay PENDING without it
        MidtransProduction: envBool("MIDTRANS_PRODUCTION", false),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
