package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDefaultSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food_catalog.csv")

	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load after seed failed: %v", err)
	}
	if cat.Len() != len(starterFoods) {
		t.Errorf("Len = %d, want %d", cat.Len(), len(starterFoods))
	}
	if _, matrix := cat.Snapshot(); matrix == nil {
		t.Error("seeded catalog should support similarity")
	}
}

func TestEnsureDefaultLeavesExistingFile(t *testing.T) {
	path := writeCatalog(t, sampleCSV)

	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != sampleCSV {
		t.Error("existing catalog was overwritten")
	}
}
