package main

import (
	"context"
	"testing"

	"github.com/BlackDragon0207/siro/internal/state"
)

func TestStateShowAndReset(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	if err := env.store.Write(ctx, state.KindUpload, state.Record{LastID: "vid123"}); err != nil {
		t.Fatalf("seed upload record: %v", err)
	}

	out, _, err := runCLI(t, []string{"state", "show"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("state show: %v", err)
	}
	requireContains(t, out, "vid123")
	requireContains(t, out, "live")

	out, _, err = runCLI(t, []string{"state", "reset", "upload"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("state reset: %v", err)
	}
	requireContains(t, out, "Cleared 1 record(s)")

	record := env.store.Read(ctx, state.KindUpload)
	if !record.Empty() {
		t.Fatalf("expected cleared record, got %+v", record)
	}
}

func TestStateResetRejectsUnknownKind(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"state", "reset", "bogus"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
