package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr bool
	}{
		{
			name: "valid single category",
			plan: Plan{Categories: []Category{{
				Name:    "Leftovers",
				Targets: []Target{{Pattern: "old.py", Kind: KindFile}},
			}}},
		},
		{
			name: "valid category with no targets",
			plan: Plan{Categories: []Category{{Name: "Nothing"}}},
		},
		{
			name:    "no categories",
			plan:    Plan{},
			wantErr: true,
		},
		{
			name: "unnamed category",
			plan: Plan{Categories: []Category{{
				Targets: []Target{{Pattern: "x", Kind: KindFile}},
			}}},
			wantErr: true,
		},
		{
			name: "blank pattern",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "  ", Kind: KindFile}},
			}}},
			wantErr: true,
		},
		{
			name: "absolute pattern",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "/etc/passwd", Kind: KindFile}},
			}}},
			wantErr: true,
		},
		{
			name: "parent traversal",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "../outside.txt", Kind: KindFile}},
			}}},
			wantErr: true,
		},
		{
			name: "embedded traversal",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "sub/../../outside", Kind: KindDirectory}},
			}}},
			wantErr: true,
		},
		{
			name: "unknown kind",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "x", Kind: Kind("symlink")}},
			}}},
			wantErr: true,
		},
		{
			name: "malformed glob",
			plan: Plan{Categories: []Category{{
				Name:    "Bad",
				Targets: []Target{{Pattern: "[", Kind: KindGlob}},
			}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPlanIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("built-in plan must validate: %v", err)
	}
	if len(p.Categories) != 7 {
		t.Errorf("built-in plan should have 7 categories, got %d", len(p.Categories))
	}
	if len(p.Retained) == 0 {
		t.Error("built-in plan should name retained files")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")

	content := `
categories:
  - name: Development test files
    targets:
      - pattern: test_one.py
        kind: file
      - pattern: "test_*.py"
        kind: glob
  - name: Original source tree
    targets:
      - pattern: src
        kind: directory
retained:
  - README.md
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(p.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(p.Categories))
	}
	if p.Categories[0].Name != "Development test files" {
		t.Errorf("category order must be preserved, got %q first", p.Categories[0].Name)
	}
	if got := p.Categories[0].Targets[1].Kind; got != KindGlob {
		t.Errorf("expected glob kind, got %q", got)
	}
	if p.TargetCount() != 3 {
		t.Errorf("expected 3 targets, got %d", p.TargetCount())
	}
	if len(p.Retained) != 1 || p.Retained[0] != "README.md" {
		t.Errorf("retained list mismatch: %v", p.Retained)
	}
}

func TestLoadRejectsInvalidPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")

	content := `
categories:
  - name: Bad
    targets:
      - pattern: /absolute/path
        kind: file
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject a plan with absolute patterns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}
