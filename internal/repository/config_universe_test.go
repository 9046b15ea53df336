package repository

import (
	"context"
	"testing"

	"SectorPulse/internal/domain/models"
)

func TestConfigUniverseRejectsEmpty(t *testing.T) {
	if _, err := NewConfigUniverse(nil); err == nil {
		t.Fatalf("expected error for empty universe")
	}
	if _, err := NewConfigUniverse([]models.SectorDefinition{{Name: "", Symbols: []string{"000001.SZ"}}}); err == nil {
		t.Fatalf("expected error for unnamed sector")
	}
	if _, err := NewConfigUniverse([]models.SectorDefinition{{Name: "Banking"}}); err == nil {
		t.Fatalf("expected error for sector without symbols")
	}
}

func TestConfigUniversePreservesOrder(t *testing.T) {
	defs := []models.SectorDefinition{
		{Name: "Banking", Symbols: []string{"000001.SZ", "600036.SH"}},
		{Name: "Construction", Symbols: []string{"000002.SZ", "601668.SH"}},
	}
	u, err := NewConfigUniverse(defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := u.Sectors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Banking" || got[1].Name != "Construction" {
		t.Fatalf("order not preserved: %+v", got)
	}

	// mutation of the returned slice must not leak back
	got[0].Name = "Mutated"
	again, _ := u.Sectors(context.Background())
	if again[0].Name != "Banking" {
		t.Fatalf("returned slice aliases internal state")
	}
}
