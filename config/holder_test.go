package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestHolder(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9001\n")

	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	if got := h.Get().Server.Port; got != 9001 {
		t.Errorf("Port = %d, want 9001", got)
	}

	t.Run("reload picks up changes", func(t *testing.T) {
		var notified *Config
		h.OnChange(func(c *Config) { notified = c })

		if err := os.WriteFile(path, []byte("server:\n  port: 9002\n"), 0o600); err != nil {
			t.Fatalf("rewrite config: %v", err)
		}
		if err := h.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}

		if got := h.Get().Server.Port; got != 9002 {
			t.Errorf("Port = %d, want 9002", got)
		}
		if notified == nil || notified.Server.Port != 9002 {
			t.Error("OnChange callback not invoked with new config")
		}
	})

	t.Run("reload keeps old config on error", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600); err != nil {
			t.Fatalf("rewrite config: %v", err)
		}
		if err := h.Reload(); err == nil {
			t.Fatal("expected reload error for invalid config")
		}

		if got := h.Get().Server.Port; got != 9002 {
			t.Errorf("Port = %d, want 9002 (old config retained)", got)
		}
	})
}

func TestHolderMissingFile(t *testing.T) {
	if _, err := NewHolder("does-not-exist.yaml", zerolog.Nop()); err == nil {
		t.Error("expected error for missing config file")
	}
}
