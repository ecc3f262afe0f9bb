package config // package config loads application configuration from environment variables

import (
    "log"     // log reports fatal configuration errors
    "os"      // os exposes environment variables
    "strconv" // strconv parses numeric values
    "time"    // time types for pool settings
)

// Config holds every runtime setting of the API.  Each field maps to a
// single environment variable.  Identifiers and secrets stay strings;
// durations and costs are plain ints interpreted by their consumers.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing

    DBMaxOpenConns    int           // connection pool: max open connections
    DBMaxIdleConns    int           // connection pool: max idle connections
    DBConnMaxLifetime time.Duration // connection pool: max connection age
}

// Load reads configuration from the environment and returns a Config.
// Required variables are enforced by must(); a missing value aborts the
// process with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty password is allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),

        // Pool settings are optional; the defaults suit a single API
        // instance in front of a small MySQL.
        DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
        DBMaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
        DBConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
    }
}

// must retrieves a required environment variable.  If the variable is
// unset or empty the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
