package database

import (
	"context"
	"testing"
	"time"
)

// Nothing listens on port 1, so every ping attempt fails. NewPool must
// report that failure instead of returning a closed pool as success.
func TestNewPool_UnreachableDatabase(t *testing.T) {
	old := connectRetryDelay
	connectRetryDelay = 0
	defer func() { connectRetryDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable")
	if err == nil {
		t.Fatalf("expected error for unreachable database, got nil (pool=%v)", pool)
	}
	if pool != nil && err != nil {
		// A pool alongside an error would invite use-after-close.
		t.Fatalf("expected nil pool on failure")
	}
}

func TestNewPool_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewPool(context.Background(), "host=%zz invalid"); err == nil {
		t.Fatalf("expected parse error for malformed DSN")
	}
}
