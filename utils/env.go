package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOrDefault returns the trimmed value of key, or def when unset or blank.
func EnvOrDefault(key, def string) string {
	return StringOrDefault(os.Getenv(key), def)
}

func StringOrDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

// EnvInt returns key parsed as an int, or def when unset or malformed.
func EnvInt(key string, def int) int {
	v, err := strconv.Atoi(EnvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func EnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(EnvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

// EnvDuration accepts Go duration syntax ("90s", "5m").
func EnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(EnvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

// EnvList splits a comma separated value, dropping blanks.
func EnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
