package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// API holds all configuration values for the quote intake API.
type API struct {
	Server Server

	// DatabaseURL is the Postgres connection string. Taken from DATABASE_URL
	// or assembled from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.
	DatabaseURL string
	// DBMaxConns and DBMinConns bound the pgx pool. Defaults 10 and 1.
	DBMaxConns int32
	DBMinConns int32
	// AutoMigrate applies pending goose migrations at startup (DB_AUTO_MIGRATE).
	AutoMigrate bool
	// DBPingTimeout bounds the startup connectivity check. Defaults to 5s.
	DBPingTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string

	CORS CORS

	// EmailServiceURL is the base URL of the email service.
	// Defaults to "http://localhost:8001".
	EmailServiceURL string
	// QuoteNotificationEmail receives owner alerts. Owner alerts fail with a
	// bad request when it is empty.
	QuoteNotificationEmail string
	// NotificationTimeout bounds every call to the email service. Defaults to 30s.
	NotificationTimeout time.Duration
}

// CORS is the cross-origin policy. List values accept JSON arrays or CSV.
type CORS struct {
	Origins          []string
	AllowCredentials bool
	Methods          []string
	Headers          []string
}

// LoadAPI reads the API configuration from environment variables.
// Returns an error listing every required variable that is not set and every
// value that fails to parse.
func LoadAPI() (API, error) {
	var missing, invalid []string

	cfg := API{
		Server: Server{
			Host: getEnv("API_HOST", "0.0.0.0"),
			Port: getInt("API_PORT", 8000, &invalid),
		},
		DBMaxConns:    int32(getInt("DB_MAX_CONNS", 10, &invalid)),
		DBMinConns:    int32(getInt("DB_MIN_CONNS", 1, &invalid)),
		AutoMigrate:   getBool("DB_AUTO_MIGRATE", false, &invalid),
		DBPingTimeout: getDuration("DB_PING_TIMEOUT", 5*time.Second, &invalid),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORS: CORS{
			Origins:          parseList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
			AllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", false, &invalid),
			Methods:          parseList(getEnv("CORS_ALLOW_METHODS", `["GET","POST","DELETE","OPTIONS"]`)),
			Headers:          parseList(getEnv("CORS_ALLOW_HEADERS", `["Content-Type","Authorization"]`)),
		},
		EmailServiceURL:        getEnv("EMAIL_SERVICE_URL", "http://localhost:8001"),
		QuoteNotificationEmail: getEnv("QUOTE_NOTIFICATION_EMAIL", ""),
		NotificationTimeout:    getDuration("NOTIFICATION_TIMEOUT", 30*time.Second, &invalid),
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL, missing = databaseURLFromParts(&invalid)
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		invalid = append(invalid, "DB_MIN_CONNS: greater than DB_MAX_CONNS")
	}

	if err := problemsError(missing, invalid); err != nil {
		return API{}, err
	}
	return cfg, nil
}

// databaseURLFromParts assembles a postgres URL from the DB_* variables.
// It returns the names of the missing variables when the URL can't be built.
func databaseURLFromParts(invalid *[]string) (string, []string) {
	var missing []string
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	for _, kv := range [][2]string{{"DB_HOST", host}, {"DB_USER", user}, {"DB_NAME", name}} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	if len(missing) > 0 {
		return "", append([]string{"DATABASE_URL"}, missing...)
	}

	port := getInt("DB_PORT", 5432, invalid)
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + name,
	}
	if pw := os.Getenv("DB_PASSWORD"); pw != "" {
		u.User = url.UserPassword(user, pw)
	} else {
		u.User = url.User(user)
	}
	return u.String(), nil
}
