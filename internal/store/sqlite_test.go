package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "budget.db")
	s, err := NewSQLiteStore(dbPath, testLogger())
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// Empty database yields the default state.
	if got := s.Load(ctx); len(got.Users) != 0 {
		t.Fatalf("expected empty state, got %d users", len(got.Users))
	}

	state := core.NewAppState()
	state.Users["a@x.com"] = &core.Account{Email: "a@x.com", Name: "Ann", VerificationKey: "4321"}
	state.TempUserEmail = "a@x.com"
	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load(ctx)
	if acc := got.Account("a@x.com"); acc == nil || acc.VerificationKey != "4321" {
		t.Fatalf("state lost after round trip: %+v", got)
	}
	if got.TempUserEmail != "a@x.com" {
		t.Fatalf("temp user email lost after round trip")
	}

	// Second save overwrites the single row.
	state.TempUserEmail = ""
	state.Users["a@x.com"].VerificationKey = ""
	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got = s.Load(ctx)
	if got.TempUserEmail != "" || got.Users["a@x.com"].VerificationKey != "" {
		t.Fatalf("overwrite did not take effect: %+v", got)
	}
}
