package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// GetEnv returns the ENV variable with the given key or the provided default value.
func GetEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// GetEnvAsInt returns the ENV variable as int or the provided default value.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")
	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsInt64 returns the ENV variable as int64 or the provided default value.
func GetEnvAsInt64(key string, defaultVal int64) int64 {
	strVal := GetEnv(key, "")
	if val, err := strconv.ParseInt(strVal, 10, 64); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsBool returns the ENV variable as bool or the provided default value.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")
	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsStringArr reads an ENV variable as a separated string array, defaulting
// to a "," separator. Empty entries are dropped.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	parts := strings.Split(strVal, sep)
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); len(trimmed) > 0 {
			res = append(res, trimmed)
		}
	}
	if len(res) == 0 {
		return defaultVal
	}
	return res
}

// GetEnvAsStringMap reads an ENV variable of the form "key1=val1,key2=val2"
// into a map, returning the provided default if unset or unparsable.
func GetEnvAsStringMap(key string, defaultVal map[string]string) map[string]string {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	res := make(map[string]string)
	for _, pair := range strings.Split(strVal, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 || len(kv[0]) == 0 {
			log.Warn().Str("key", key).Str("pair", pair).Msg("Skipping malformed map entry in ENV variable")
			continue
		}
		res[kv[0]] = kv[1]
	}
	if len(res) == 0 {
		return defaultVal
	}
	return res
}

// GetEnvAsDuration returns the ENV variable parsed via time.ParseDuration
// or the provided default value.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")
	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}
	return defaultVal
}
