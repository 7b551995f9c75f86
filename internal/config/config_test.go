package config

import (
	"path/filepath"
	"testing"
)

func TestDeriveVaultDir(t *testing.T) {
	tests := []struct {
		name    string
		logPath string
		want    string
	}{
		{
			name:    "standard layout derives sibling of memory dir",
			logPath: filepath.Join("home", ".aigent", "memory", "events.jsonl"),
			want:    filepath.Join("home", ".aigent", "vault"),
		},
		{
			name:    "relative standard layout",
			logPath: filepath.Join("memory", "events.jsonl"),
			want:    "vault",
		},
		{
			name:    "non-standard file name disables derivation",
			logPath: filepath.Join("home", ".aigent", "memory", "log.jsonl"),
			want:    "",
		},
		{
			name:    "non-standard directory name disables derivation",
			logPath: filepath.Join("data", "events.jsonl"),
			want:    "",
		},
		{
			name:    "arbitrary path disables derivation",
			logPath: filepath.Join("data", "log.jsonl"),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveVaultDir(tt.logPath); got != tt.want {
				t.Errorf("DeriveVaultDir(%q) = %q, want %q", tt.logPath, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("VAULT_TIER_LIMIT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("BOT_NAME", "")

	if got := ServerPort(); got != 8080 {
		t.Errorf("ServerPort() = %d, want 8080", got)
	}
	if got := VaultTierLimit(); got != 12 {
		t.Errorf("VaultTierLimit() = %d, want 12", got)
	}
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want info", got)
	}
	if got := BotName(); got != "Aigent" {
		t.Errorf("BotName() = %q, want Aigent", got)
	}
}

func TestVaultDirOverride(t *testing.T) {
	t.Setenv("MEMORY_VAULT_DIR", "/tmp/custom-vault")
	if got := VaultDir(); got != "/tmp/custom-vault" {
		t.Errorf("VaultDir() = %q, want /tmp/custom-vault", got)
	}

	t.Setenv("MEMORY_VAULT_DIR", "")
	t.Setenv("MEMORY_EVENT_LOG", filepath.Join("data", "memory", "events.jsonl"))
	if got := VaultDir(); got != filepath.Join("data", "vault") {
		t.Errorf("VaultDir() = %q, want derived sibling of the memory dir", got)
	}

	t.Setenv("MEMORY_EVENT_LOG", filepath.Join("data", "log.jsonl"))
	if got := VaultDir(); got != "" {
		t.Errorf("VaultDir() = %q, want empty for a non-standard log path", got)
	}
}
