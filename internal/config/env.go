package config

import (
	"sort"
	"strconv"
)

// Project derives the environment variables every child process must see,
// one entry per configuration field the application reads. Pure function of
// the config: same input, same mapping. When applied, the result is merged
// over the ambient process environment, never replacing it.
func Project(cfg Config) map[string]string {
	return map[string]string{
		"DATABASE_URL":      cfg.DatabaseURL,
		"REDIS_URL":         cfg.RedisURL,
		"HOST":              cfg.Host,
		"PORT":              strconv.Itoa(cfg.Port),
		"USE_ARQ_WORKER":    strconv.FormatBool(cfg.WorkerEnabled),
		"ARQ_MAX_TRIES":     strconv.Itoa(cfg.WorkerMaxTries),
		"ADMIN_API_ENABLED": strconv.FormatBool(cfg.AdminAPIEnabled),
		"ADMIN_KEY":         cfg.AdminKey,
	}
}

// EnvironList renders a projected environment as sorted KEY=VALUE pairs,
// the form exec and the multiplexer backend consume.
func EnvironList(env map[string]string) []string {
	pairs := make([]string, 0, len(env))
	for key, value := range env {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return pairs
}
