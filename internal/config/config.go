package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once in main and passed by
// value into the constructors that need it; no package keeps an ambient
// reference to the environment.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DatabaseURL    string // full MySQL DSN; overrides the discrete DB_* vars when set
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    CORSOrigin     string // allowed cross-origin address for the browser client
    JWTSecret      string // secret used to sign session tokens
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
    AMQPURL        string // RabbitMQ URL for entry change events (empty disables the queue)
}

// Load reads configuration values from environment variables and returns a
// Config.  Every knob has a default so a bare `go run` works against a local
// stack; only JWT_SECRET is enforced when APP_ENV=prod, because shipping the
// dev fallback secret to production would make every session forgeable.
func Load() Config {
    cfg := Config{
        Env:            envStr("APP_ENV", "dev"),                       // environment (dev/test/prod)
        Port:           envStr("APP_PORT", "4000"),                     // port to bind the HTTP server
        DatabaseURL:    os.Getenv("DATABASE_URL"),                      // optional full DSN
        DBUser:         envStr("DB_USER", "root"),                      // database user
        DBPass:         os.Getenv("DB_PASS"),                           // database password (empty allowed)
        DBHost:         envStr("DB_HOST", "localhost"),                 // database host
        DBPort:         envStr("DB_PORT", "3306"),                      // database port
        DBName:         envStr("DB_NAME", "media_catalog"),             // database name
        CORSOrigin:     envStr("CORS_ORIGIN", "http://localhost:5173"), // browser client origin
        JWTSecret:      envStr("JWT_SECRET", "change_this_secret"),     // signing secret (dev fallback)
        AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),             // TTL for access tokens in minutes
        RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),            // TTL for refresh tokens in days
        BcryptCost:     envInt("BCRYPT_COST", 10),                      // bcrypt cost factor
        AMQPURL:        os.Getenv("AMQP_URL"),                          // broker URL (empty disables events)
    }
    if cfg.Env == "prod" && cfg.JWTSecret == "change_this_secret" {
        log.Fatal("JWT_SECRET must be set when APP_ENV=prod")
    }
    return cfg
}

// IsProd reports whether the application runs in production mode.  The
// Secure cookie flag depends on it.
func (c Config) IsProd() bool { return c.Env == "prod" }

// envStr retrieves the value of an environment variable, falling back to the
// given default when the variable is unset or empty.
func envStr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// envInt is like envStr but converts the retrieved string into an integer.
// Malformed values fall back to the default rather than aborting startup.
func envInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
