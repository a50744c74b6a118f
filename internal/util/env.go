package util

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	envOnce sync.Once
	env     *viper.Viper
)

// environment returns the viper instance all ENV lookups go through
func environment() *viper.Viper {
	envOnce.Do(func() {
		env = viper.New()
		env.AutomaticEnv()
	})
	return env
}

func GetEnv(key string, defaultVal string) string {
	v := environment()
	if v.IsSet(key) {
		return v.GetString(key)
	}

	return defaultVal
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	v := environment()
	if !v.IsSet(key) {
		return defaultVal
	}

	switch strings.ToLower(strings.TrimSpace(v.GetString(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		log.Warn().Str("key", key).Msg("Invalid boolean ENV value, using default")
		return defaultVal
	}
}

func GetEnvAsUint32(key string, defaultVal uint32) uint32 {
	v := environment()
	if !v.IsSet(key) {
		return defaultVal
	}

	return v.GetUint32(key)
}

func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	v := environment()
	if !v.IsSet(key) {
		return defaultVal
	}

	duration, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Invalid duration ENV value, using default")
		return defaultVal
	}

	return duration
}

func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	v := environment()
	if !v.IsSet(key) {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	var out []string
	for _, part := range strings.Split(v.GetString(key), sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func GetEnvAsLogLevel(key string, defaultVal zerolog.Level) zerolog.Level {
	v := environment()
	if !v.IsSet(key) {
		return defaultVal
	}

	level, err := zerolog.ParseLevel(v.GetString(key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Invalid log level ENV value, using default")
		return defaultVal
	}

	return level
}

// GetMgmtSecret returns the management secret set via key or a random one,
// in which case the management endpoints are only reachable within this process.
func GetMgmtSecret(key string) string {
	if secret := GetEnv(key, ""); secret != "" {
		return secret
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Panic().Err(err).Msg("Failed to generate management secret")
	}

	log.Debug().Str("key", key).Msg("No management secret set, using a random one")

	return hex.EncodeToString(buf)
}

// GetProjectRootDir returns PROJECT_ROOT_DIR or, if unset, the directory holding go.mod
func GetProjectRootDir() string {
	if dir := GetEnv("PROJECT_ROOT_DIR", ""); dir != "" {
		return dir
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "/app"
	}

	// internal/util/env.go
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// RunningInTest reports whether the current binary was built by "go test"
func RunningInTest() bool {
	return strings.HasSuffix(os.Args[0], ".test")
}
