package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUseIdempotency(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		calls++
		rw.WriteHeader(http.StatusOK)
	})

	h := UseIdempotency(inner, IdempotencyHandlerOptions{
		Expiry:      time.Minute,
		IgnorePaths: []string{"/ignored"},
	}, NewIdempotencyStoreLocal())

	do := func(method, path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodPost, "/signup", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d without a key, got %d", http.StatusBadRequest, rr.Code)
	}

	if rr := do(http.MethodPost, "/signup", "key-1"); rr.Code != http.StatusOK {
		t.Errorf("expected status %d for a fresh key, got %d", http.StatusOK, rr.Code)
	}

	if rr := do(http.MethodPost, "/signup", "key-1"); rr.Code != http.StatusConflict {
		t.Errorf("expected status %d for a reused key, got %d", http.StatusConflict, rr.Code)
	}

	if rr := do(http.MethodGet, "/signup", ""); rr.Code != http.StatusOK {
		t.Errorf("expected GET requests to pass through, got %d", rr.Code)
	}

	if rr := do(http.MethodPost, "/ignored", ""); rr.Code != http.StatusOK {
		t.Errorf("expected ignored paths to pass through, got %d", rr.Code)
	}

	if calls != 3 {
		t.Errorf("expected the inner handler to run 3 times, got %d", calls)
	}
}

func TestIdempotencyStoreLocalExpiry(t *testing.T) {
	store := NewIdempotencyStoreLocal()

	if err := store.Set("key", -time.Second); err != nil {
		t.Fatal(err)
	}

	found, err := store.Get("key")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected an expired key not to be found")
	}
}
