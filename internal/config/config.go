// Package config loads and validates configuration for both services from
// environment variables, optionally seeded from a .env file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given files (".env" when none are
// named) without overriding variables already set in the environment.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// Server holds the bind address shared by both services.
type Server struct {
	// Host defaults to "0.0.0.0".
	Host string
	// Port defaults to 8000 for the API and 8001 for the email service.
	Port int
}

// Addr returns host:port for http.Server.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, recording a problem on bad input.
func getInt(key string, fallback int, problems *[]string) int {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: not an integer: %q", key, v))
		return fallback
	}
	return n
}

// getBool parses a boolean variable ("true", "1", "yes", ...).
func getBool(key string, fallback bool, problems *[]string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	*problems = append(*problems, fmt.Sprintf("%s: not a boolean: %q", key, v))
	return fallback
}

// getDuration accepts a Go duration ("30s") or a bare number of seconds ("30").
func getDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s: not a positive duration: %q", key, v))
		return fallback
	}
	return d
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseList accepts either a JSON array (`["GET","POST"]`) or a CSV string.
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return splitCSV(strings.Join(list, ","))
		}
	}
	return splitCSV(s)
}

func problemsError(missing, invalid []string) error {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid environment variables: "+strings.Join(invalid, "; "))
	}
	if len(parts) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}
