package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	scn := Default()

	if err := scn.Validate(); err != nil {
		t.Fatalf("default scenario invalid: %v", err)
	}
	if scn.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if len(scn.Masses) != len(scn.Bodies) {
		t.Error("masses and bodies should agree")
	}
}

func TestTimesGrid(t *testing.T) {
	grid := TimesConfig{Start: 0, Stop: 1.0, Count: 5}.Grid()

	if len(grid) != 5 {
		t.Fatalf("expected 5 points, got %d", len(grid))
	}
	if grid[0] != 0 || math.Abs(grid[4]-1.0) > 1e-12 {
		t.Errorf("grid endpoints wrong: %v", grid)
	}
	if math.Abs(grid[2]-0.5) > 1e-12 {
		t.Errorf("grid midpoint wrong: %v", grid)
	}
}

func TestTimesGridSinglePoint(t *testing.T) {
	grid := TimesConfig{Start: 2.5, Stop: 10.0, Count: 1}.Grid()
	if len(grid) != 1 || grid[0] != 2.5 {
		t.Errorf("expected [2.5], got %v", grid)
	}
}

func TestTimesGridExplicitWins(t *testing.T) {
	tc := TimesConfig{Start: 0, Stop: 1, Count: 10, Explicit: []float64{0.5, 0.2}}
	grid := tc.Grid()
	if len(grid) != 2 || grid[0] != 0.5 || grid[1] != 0.2 {
		t.Errorf("explicit times should win: %v", grid)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	scn := GetPreset("figure-eight")
	if scn == nil {
		t.Fatal("missing figure-eight preset")
	}

	if err := Save(path, scn); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != scn.Name {
		t.Errorf("expected name %q, got %q", scn.Name, loaded.Name)
	}
	if len(loaded.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(loaded.Bodies))
	}
	if loaded.Bodies[2].VX != scn.Bodies[2].VX {
		t.Errorf("body state not preserved: %+v", loaded.Bodies[2])
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		scn := GetPreset(name)
		if scn == nil {
			t.Fatalf("GetPreset(%q) returned nil", name)
		}
		if err := scn.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestGetPresetCopyIsIndependent(t *testing.T) {
	scn := GetPreset("two-body")
	if scn == nil {
		t.Fatal("missing two-body preset")
	}

	scn.Masses[1] = 99.0
	scn.Bodies[1].X = -5.0
	scn.Times.Explicit = append(scn.Times.Explicit, 1.0)

	fresh := GetPreset("two-body")
	if fresh.Masses[1] != 3e-6 {
		t.Errorf("preset masses mutated: %v", fresh.Masses)
	}
	if fresh.Bodies[1].X != 1.0 {
		t.Errorf("preset bodies mutated: %+v", fresh.Bodies[1])
	}
	if len(fresh.Times.Explicit) != 0 {
		t.Errorf("preset explicit times mutated: %v", fresh.Times.Explicit)
	}
}

func TestCheckStatesDefaultsOn(t *testing.T) {
	if !Default().CheckStates {
		t.Error("default scenario should have state checks on")
	}
	for _, name := range ListPresets() {
		if !GetPreset(name).CheckStates {
			t.Errorf("preset %q should have state checks on", name)
		}
	}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("name: bare\n"), 0644); err != nil {
		t.Fatal(err)
	}
	scn, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !scn.CheckStates {
		t.Error("omitting check_states should keep checks on")
	}

	if err := os.WriteFile(path, []byte("name: bare\ncheck_states: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	scn, err = Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if scn.CheckStates {
		t.Error("check_states: false should disable checks")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Scenario)
	}{
		{"no masses", func(s *Scenario) { s.Masses = nil; s.Bodies = nil }},
		{"count mismatch", func(s *Scenario) { s.Bodies = s.Bodies[:1] }},
		{"negative time count", func(s *Scenario) { s.Times.Count = -1 }},
		{"zero dt", func(s *Scenario) { s.Dt = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scn := Default()
			tt.mut(scn)
			if err := scn.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCoords(t *testing.T) {
	scn := Default()
	rows := scn.Coords()

	if len(rows) != len(scn.Bodies) {
		t.Fatalf("expected %d rows, got %d", len(scn.Bodies), len(rows))
	}
	for i, row := range rows {
		if len(row) != 6 {
			t.Errorf("row %d has %d components", i, len(row))
		}
	}
	if rows[1][0] != 1.0 || rows[1][4] != 1.0 {
		t.Errorf("secondary row wrong: %v", rows[1])
	}
}
