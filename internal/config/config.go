package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by AIGENT_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("AIGENT_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// EventLogPath returns where the append-only memory event log lives.
// Defaults to ~/.aigent/memory/events.jsonl.
func EventLogPath() string {
	if p := os.Getenv("MEMORY_EVENT_LOG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aigent", "memory", "events.jsonl")
	}
	return filepath.Join(home, ".aigent", "memory", "events.jsonl")
}

// VaultDir returns the vault projection root. MEMORY_VAULT_DIR wins;
// otherwise the root is derived from the standard event log layout.
// Returns "" when neither applies, which disables vault projection.
func VaultDir() string {
	if p := os.Getenv("MEMORY_VAULT_DIR"); p != "" {
		return p
	}
	return DeriveVaultDir(EventLogPath())
}

// DeriveVaultDir computes the default vault root for an event log path.
// Only the standard layout derives one: a file named events.jsonl inside a
// directory named memory maps to the vault directory beside that memory
// directory, so <root>/memory/events.jsonl projects into <root>/vault.
// Any other layout returns "" and the vault stays disabled unless
// MEMORY_VAULT_DIR is set explicitly.
func DeriveVaultDir(logPath string) string {
	if filepath.Base(logPath) != "events.jsonl" {
		return ""
	}
	memoryDir := filepath.Dir(logPath)
	if filepath.Base(memoryDir) != "memory" {
		return ""
	}
	return filepath.Join(filepath.Dir(memoryDir), "vault")
}

// EmbedCachePath returns the SQLite embedding cache path, or "" when the
// cache is disabled.
func EmbedCachePath() string {
	return os.Getenv("EMBED_CACHE_PATH")
}

// VaultTierLimit caps entries per tier summary in the vault.
// Defaults to 12 if not set.
func VaultTierLimit() int {
	limit, err := strconv.Atoi(os.Getenv("VAULT_TIER_LIMIT"))
	if err != nil || limit <= 0 {
		return 12
	}
	return limit
}

// BotName returns the agent's display name used in constitution seeding.
func BotName() string {
	name := os.Getenv("BOT_NAME")
	if name == "" {
		return "Aigent"
	}
	return name
}

// UserName returns the human's name used in constitution seeding.
func UserName() string {
	name := os.Getenv("USER_NAME")
	if name == "" {
		return "friend"
	}
	return name
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
