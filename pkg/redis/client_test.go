package redis

import (
	"testing"

	"github.com/bashfilms/quote-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when no url or address configured")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@localhost:6380/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestFlagKeysAreNamespacedPerSession(t *testing.T) {
	c := &Client{}

	if got := c.SendingKey("sess-1"); got != "bq:sending:sess-1" {
		t.Fatalf("unexpected sending key %q", got)
	}
	if got := c.ConfirmationKey("sess-1"); got != "bq:confirmation:sess-1" {
		t.Fatalf("unexpected confirmation key %q", got)
	}
	if c.SendingKey("a") == c.ConfirmationKey("a") {
		t.Fatal("sending and confirmation keys must not collide")
	}
}
