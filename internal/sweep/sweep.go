package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"repo-sweep/internal/config"
	"repo-sweep/internal/confirm"
	"repo-sweep/internal/fsops"
	"repo-sweep/internal/history"
	"repo-sweep/internal/metrics"
	"repo-sweep/internal/plan"
	"repo-sweep/internal/safety"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrDeclined means the operator answered the confirmation gate
	// negatively; no deletions occurred
	ErrDeclined = errors.New("sweep declined by operator")

	// ErrWorkingDir means the working directory is missing or not enterable
	ErrWorkingDir = errors.New("working directory inaccessible")

	// ErrAborted means a hard failure stopped the run under the abort policy
	ErrAborted = errors.New("sweep aborted on hard failure")
)

// Logger interface for structured logging in sweep
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// stdLogger wraps standard log.Logger to implement Logger
type stdLogger struct {
	*log.Logger
}

func (l *stdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *stdLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *stdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

// Metrics interface for sweep metrics
type Metrics interface {
	EntriesRemoved() prometheus.Counter
	BytesFreed() prometheus.Counter
	Errors() prometheus.Counter
}

// sweepMetrics wraps the global registry to implement Metrics
type sweepMetrics struct{}

func (m *sweepMetrics) EntriesRemoved() prometheus.Counter { return metrics.EntriesRemovedTotal }
func (m *sweepMetrics) BytesFreed() prometheus.Counter     { return metrics.BytesFreedTotal }
func (m *sweepMetrics) Errors() prometheus.Counter         { return metrics.ErrorsTotal }

// Failure records one hard per-target failure
type Failure struct {
	Path     string
	Category string
	Err      error
}

// Summary is the outcome of one sweep run
type Summary struct {
	Removed    int
	BytesFreed int64
	Failures   []Failure
	DryRun     bool
}

// Sweeper applies a cleanup plan to a working tree behind a confirmation gate
type Sweeper struct {
	logger    Logger
	metrics   Metrics
	deleter   fsops.Deleter
	validator *safety.Validator
	confirmer confirm.Confirmer
	db        *history.DB
	out       io.Writer
	policy    config.ErrorPolicy
	dryRun    bool
}

// New creates a Sweeper with the real OS deleter. The validator is built
// lazily in Run once the working directory is known.
func New(logger *log.Logger, confirmer confirm.Confirmer, out io.Writer, dryRun bool, policy config.ErrorPolicy, db *history.DB) *Sweeper {
	sl := &stdLogger{Logger: logger}
	if logger == nil {
		sl.Logger = log.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	if policy == "" {
		policy = config.PolicyContinue
	}
	metrics.Init()
	return &Sweeper{
		logger:    sl,
		metrics:   &sweepMetrics{},
		deleter:   fsops.OSDeleter{},
		confirmer: confirmer,
		db:        db,
		out:       out,
		policy:    policy,
		dryRun:    dryRun,
	}
}

// SetDeleter replaces the filesystem deleter, used by tests
func (s *Sweeper) SetDeleter(d fsops.Deleter) {
	s.deleter = d
}

// SetValidator replaces the safety validator, used by tests
func (s *Sweeper) SetValidator(v *safety.Validator) {
	s.validator = v
}

// Run applies the plan against root. The order is fixed: working-directory
// check, confirmation gate, category execution, retained-files report.
// Nothing is deleted before the gate is affirmed.
func (s *Sweeper) Run(ctx context.Context, root string, p *plan.Plan) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWorkingDir, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrWorkingDir, root)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWorkingDir, root, err)
	}

	if s.validator == nil {
		s.validator = safety.NewValidator(root, nil)
	}

	printWarning(s.out, root, p.TargetCount(), s.dryRun)
	ok, err := s.confirmer.Confirm("Proceed with removal?")
	if err != nil {
		return nil, err
	}
	if !ok {
		printCancelled(s.out)
		return nil, ErrDeclined
	}

	start := time.Now()
	metrics.RecordRun()

	summary := &Summary{DryRun: s.dryRun}
	s.logger.Info("Starting sweep", "root", root, "categories", len(p.Categories), "targets", p.TargetCount(), "dry_run", s.dryRun)

	for _, cat := range p.Categories {
		printBanner(s.out, cat.Name)
		for _, target := range cat.Targets {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}

			if err := s.applyTarget(root, cat.Name, target, summary); err != nil {
				metrics.RunDuration.Observe(time.Since(start).Seconds())
				return summary, err
			}
		}
	}

	metrics.RunDuration.Observe(time.Since(start).Seconds())

	printRetained(s.out, p.Retained)
	printClosing(s.out, summary)

	s.logger.Info("Sweep complete",
		"removed", summary.Removed,
		"errors", len(summary.Failures),
		"bytes_freed", summary.BytesFreed,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return summary, nil
}

// applyTarget resolves one target against root and removes what it names.
// Returns a non-nil error only when the abort policy stops the run.
func (s *Sweeper) applyTarget(root, category string, target plan.Target, summary *Summary) error {
	switch target.Kind {
	case plan.KindFile:
		return s.removeOne(filepath.Join(root, target.Pattern), category, false, summary)
	case plan.KindDirectory:
		return s.removeOne(filepath.Join(root, target.Pattern), category, true, summary)
	case plan.KindGlob:
		matches, err := filepath.Glob(filepath.Join(root, target.Pattern))
		if err != nil {
			// Plan validation rejects malformed globs up front; a failure
			// here still must not take down the rest of the run
			s.recordFailure(summary, target.Pattern, category, err)
			return nil
		}
		for _, match := range matches {
			info, err := os.Lstat(match)
			if err != nil {
				// Matched a moment ago, gone now: the usual no-op rule applies
				continue
			}
			if err := s.removeOne(match, category, info.IsDir(), summary); err != nil {
				return err
			}
		}
		return nil
	default:
		// Unreachable past plan validation
		return nil
	}
}

// removeOne removes a single path. Absence is a silent no-op, never an error.
func (s *Sweeper) removeOne(path, category string, isDir bool, summary *Summary) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.logStructured("ERROR", path, category, 0, err.Error())
		s.recordFailure(summary, path, category, err)
		return s.abortIfConfigured(err)
	}

	kind := "file"
	if isDir {
		kind = "directory"
	}

	if err := s.validator.ValidateDeleteTarget(path); err != nil {
		s.logStructured("SKIP", path, category, 0, err.Error())
		s.recordHistory("SKIP", path, category, kind, 0, err.Error())
		s.recordFailure(summary, path, category, err)
		return s.abortIfConfigured(err)
	}

	size := info.Size()
	if isDir {
		size = treeSize(path)
	}

	if s.dryRun {
		s.logger.Info("[DRY RUN] Would remove", "path", path, "kind", kind, "size", size)
		s.logStructured("DRY_RUN", path, category, size, "")
		s.recordHistory("DRY_RUN", path, category, kind, size, "")
		printRemoved(s.out, path, isDir)
		summary.Removed++
		summary.BytesFreed += size
		return nil
	}

	if isDir {
		err = s.deleter.RemoveAll(path)
	} else {
		err = s.deleter.Remove(path)
	}
	if err != nil {
		// Deleted out from under us between Lstat and Remove; the no-op
		// rule covers that too
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Error("Failed to remove", "path", path, "error", err)
		s.logStructured("ERROR", path, category, size, "")
		s.recordHistory("ERROR", path, category, kind, size, err.Error())
		s.recordFailure(summary, path, category, err)
		return s.abortIfConfigured(err)
	}

	s.logStructured("REMOVE", path, category, size, "")
	s.recordHistory("REMOVE", path, category, kind, size, "")
	printRemoved(s.out, path, isDir)

	summary.Removed++
	summary.BytesFreed += size
	s.metrics.EntriesRemoved().Inc()
	s.metrics.BytesFreed().Add(float64(size))
	metrics.RecordCategoryRemoval(category)
	return nil
}

func (s *Sweeper) recordFailure(summary *Summary, path, category string, err error) {
	summary.Failures = append(summary.Failures, Failure{Path: path, Category: category, Err: err})
	s.metrics.Errors().Inc()
}

func (s *Sweeper) abortIfConfigured(err error) error {
	if s.policy == config.PolicyAbort {
		return fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return nil
}

func (s *Sweeper) recordHistory(action, path, category, kind string, size int64, errorMsg string) {
	if s.db == nil {
		return
	}
	if err := s.db.RecordRemoval(action, path, category, kind, size, errorMsg); err != nil {
		// History is best-effort; never fail the sweep over it
		s.logger.Error("Failed to record history", "error", err)
	}
}

// logStructured logs with structured format: timestamp, action, path, category, size
func (s *Sweeper) logStructured(action, path, category string, size int64, detail string) {
	entry := fmt.Sprintf("[%s] %s path=%s category=%q size=%d",
		time.Now().UTC().Format(time.RFC3339),
		action,
		path,
		category,
		size,
	)
	if detail != "" {
		entry += fmt.Sprintf(" detail=%q", detail)
	}
	s.logger.Info(entry)
}

// treeSize sums file sizes under dir, best effort
func treeSize(dir string) int64 {
	var total int64
	filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
