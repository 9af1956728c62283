package redis

import (
	"context"
	"testing"
	"time"
)

func TestKeyFormats(t *testing.T) {
	if got := rateLimitKey("login:1.2.3.4"); got != "ratelimit:login:1.2.3.4" {
		t.Fatalf("unexpected rate limit key: %s", got)
	}
	if got := resetTokenKey("abc"); got != "pwreset:abc" {
		t.Fatalf("unexpected reset token key: %s", got)
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
