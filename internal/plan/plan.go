package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies how a target pattern is resolved against the working tree
type Kind string

const (
	KindFile      Kind = "file"      // single file, removed if present
	KindDirectory Kind = "directory" // directory removed recursively if present
	KindGlob      Kind = "glob"      // pattern expanded; every match removed
)

// Target is one path or pattern slated for removal, relative to the sweep root
type Target struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Kind    Kind   `yaml:"kind" json:"kind"`
}

// Category groups targets under a human-readable label used in progress banners
type Category struct {
	Name    string   `yaml:"name" json:"name"`
	Targets []Target `yaml:"targets" json:"targets"`
}

// Plan is the complete, ordered set of removals for one run.
// Retained is the static list of files printed in the closing report;
// it is informational only and independent of what was actually found on disk.
type Plan struct {
	Categories []Category `yaml:"categories" json:"categories"`
	Retained   []string   `yaml:"retained" json:"retained"`
}

var (
	errEmptyPlan       = errors.New("plan must contain at least one category")
	errEmptyCategory   = errors.New("category must have a name")
	errBlankPattern    = errors.New("target pattern must not be blank")
	errAbsolutePattern = errors.New("target pattern must be relative to the working directory")
	errTraversal       = errors.New("target pattern must not contain '..'")
	errUnknownKind     = errors.New("unknown target kind")
)

func (k Kind) valid() bool {
	switch k {
	case KindFile, KindDirectory, KindGlob:
		return true
	}
	return false
}

// Validate checks structural invariants before the plan is allowed anywhere
// near a Deleter. Patterns must stay inside the working directory: relative,
// clean, and free of parent-directory segments.
func (p *Plan) Validate() error {
	if len(p.Categories) == 0 {
		return errEmptyPlan
	}
	for _, cat := range p.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return errEmptyCategory
		}
		for _, t := range cat.Targets {
			if err := t.validate(); err != nil {
				return fmt.Errorf("category %q: %w", cat.Name, err)
			}
		}
	}
	return nil
}

func (t Target) validate() error {
	if strings.TrimSpace(t.Pattern) == "" {
		return errBlankPattern
	}
	if filepath.IsAbs(t.Pattern) {
		return fmt.Errorf("%w: %s", errAbsolutePattern, t.Pattern)
	}
	if hasDotDot(t.Pattern) {
		return fmt.Errorf("%w: %s", errTraversal, t.Pattern)
	}
	if !t.Kind.valid() {
		return fmt.Errorf("%w: %q (pattern %s)", errUnknownKind, t.Kind, t.Pattern)
	}
	if t.Kind == KindGlob {
		if _, err := filepath.Match(t.Pattern, ""); err != nil {
			return fmt.Errorf("bad glob %s: %w", t.Pattern, err)
		}
	}
	return nil
}

func hasDotDot(pattern string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(pattern), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// TargetCount returns the total number of declared targets across all categories
func (p *Plan) TargetCount() int {
	n := 0
	for _, cat := range p.Categories {
		n += len(cat.Targets)
	}
	return n
}
