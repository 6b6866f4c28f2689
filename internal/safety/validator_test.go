package safety

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDeleteTarget(t *testing.T) {
	root := t.TempDir()
	v := NewValidator(root, nil)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "inside root",
			path: filepath.Join(root, "junk.log"),
		},
		{
			name: "nested inside root",
			path: filepath.Join(root, "sub", "deep", "file.txt"),
		},
		{
			name:    "root slash",
			path:    "/",
			wantErr: ErrProtectedPath,
		},
		{
			name:    "etc passwd",
			path:    "/etc/passwd",
			wantErr: ErrProtectedPath,
		},
		{
			name:    "usr bin",
			path:    "/usr/bin/python3",
			wantErr: ErrProtectedPath,
		},
		{
			name:    "sibling of root",
			path:    filepath.Join(filepath.Dir(root), "other-tree", "file.txt"),
			wantErr: ErrOutsideRoot,
		},
		{
			name:    "traversal in raw input",
			path:    filepath.Join(root, "sub", "..", "..", "escape.txt"),
			wantErr: ErrOutsideRoot,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "whitespace path",
			path:    "   ",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDeleteTarget(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDeleteTarget(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDeleteTarget(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelativeTraversalBlocked(t *testing.T) {
	root := t.TempDir()
	v := NewValidator(root, nil)

	// Raw ".." segments are rejected even when the cleaned path would
	// land back inside the root
	// filepath.Join would clean away the "..", so build the raw path by hand
	raw := root + string(filepath.Separator) + "sub" + string(filepath.Separator) + ".." + string(filepath.Separator) + "junk.log"
	err := v.ValidateDeleteTarget(raw)
	if !errors.Is(err, ErrTraversal) {
		t.Fatalf("expected ErrTraversal for %q, got %v", raw, err)
	}
}

func TestSymlinkedParentEscapeBlocked(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	// root/linked -> outside; removing root/linked/victim.txt would
	// actually delete outside/victim.txt
	if err := os.WriteFile(filepath.Join(outside, "victim.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write victim: %v", err)
	}
	link := filepath.Join(root, "linked")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	v := NewValidator(root, nil)
	err := v.ValidateDeleteTarget(filepath.Join(link, "victim.txt"))
	if !errors.Is(err, ErrSymlinkEscape) {
		t.Fatalf("expected ErrSymlinkEscape, got %v", err)
	}
}

func TestSymlinkLeafInsideRootAllowed(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	// The leaf itself may point anywhere: removing it only removes the link
	target := filepath.Join(outside, "kept.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(root, "dangling-ref")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	v := NewValidator(root, nil)
	if err := v.ValidateDeleteTarget(link); err != nil {
		t.Fatalf("symlink leaf inside root should be removable: %v", err)
	}
}

func TestExtraProtectedPaths(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "consolidated")
	v := NewValidator(root, []string{keep})

	if err := v.ValidateDeleteTarget(filepath.Join(keep, "server.py")); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("extra protected path should block, got %v", err)
	}
	if err := v.ValidateDeleteTarget(filepath.Join(root, "other.py")); err != nil {
		t.Errorf("non-protected sibling should pass, got %v", err)
	}
}
