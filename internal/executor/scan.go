// Package executor drives a documentation scan: walk, extract, check, report.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/doccheck/internal/checker"
	"github.com/harrison/doccheck/internal/fileutil"
	"github.com/harrison/doccheck/internal/logger"
	"github.com/harrison/doccheck/internal/models"
	"github.com/harrison/doccheck/internal/parser"
)

// ErrScriptsFailed reports that at least one script block failed linting.
// The scan itself completed; every block was checked.
var ErrScriptsFailed = errors.New("one or more shell scripts failed shellcheck")

// Reporter receives scan progress in document order.
type Reporter interface {
	Checking(block models.ScriptBlock)
	Result(result models.CheckResult)
	Unterminated(block models.UnterminatedBlock)
	Summary(summary *models.Summary)
}

// Orchestrator checks every shell script block in a documentation tree, one at a time.
type Orchestrator struct {
	checker  checker.Checker
	reporter Reporter
	logger   logger.Logger
	readFile func(string) ([]byte, error)
}

// NewOrchestrator creates a new Orchestrator instance.
// The reporter and logger parameters are optional and can be nil.
func NewOrchestrator(c checker.Checker, reporter Reporter, log logger.Logger) *Orchestrator {
	if c == nil {
		panic("checker cannot be nil")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Orchestrator{
		checker:  c,
		reporter: reporter,
		logger:   log,
		readFile: os.ReadFile,
	}
}

// Scan walks root, extracts script blocks from each documentation file and
// checks them sequentially. A failing block never stops later blocks.
//
// Walk errors, unreadable files and checker errors abort the scan and are
// returned together with the partial summary. Lint failures are not errors:
// inspect summary.ExitCode().
func (o *Orchestrator) Scan(ctx context.Context, root string, opts fileutil.WalkOptions) (*models.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			o.logger.LogWarn("received interrupt signal, stopping scan")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary := &models.Summary{StartedAt: time.Now()}
	err := o.scan(ctx, root, opts, summary)
	summary.Duration = time.Since(summary.StartedAt)

	if err != nil {
		return summary, err
	}

	o.logger.LogInfo(fmt.Sprintf("checked %d script block(s) in %d file(s), %d failed",
		summary.BlocksChecked, summary.FilesScanned, summary.Failed()))
	if o.reporter != nil {
		o.reporter.Summary(summary)
	}
	return summary, nil
}

func (o *Orchestrator) scan(ctx context.Context, root string, opts fileutil.WalkOptions, summary *models.Summary) error {
	o.logger.LogDebug(fmt.Sprintf("scanning %s for %v", root, opts.Extensions))

	for path, err := range fileutil.Walk(root, opts) {
		if err != nil {
			return fmt.Errorf("failed to walk documentation tree: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan interrupted: %w", err)
		}
		if err := o.checkFile(ctx, path, summary); err != nil {
			return err
		}
	}
	return nil
}

// checkFile extracts and checks every block of one documentation file
func (o *Orchestrator) checkFile(ctx context.Context, path string, summary *models.Summary) error {
	extractor, err := parser.ForPath(path)
	if err != nil {
		return err
	}

	content, err := o.readFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	summary.FilesScanned++
	o.logger.LogTrace(fmt.Sprintf("read %s (%d bytes)", path, len(content)))

	for block, err := range extractor.Extract(path, content) {
		if err != nil {
			var unterminated *parser.UnterminatedError
			if !errors.As(err, &unterminated) {
				return fmt.Errorf("failed to extract scripts from %s: %w", path, err)
			}
			u := models.UnterminatedBlock{Path: unterminated.Path, Line: unterminated.Line}
			summary.Unterminated = append(summary.Unterminated, u)
			if o.reporter != nil {
				o.reporter.Unterminated(u)
			}
			continue
		}

		if o.reporter != nil {
			o.reporter.Checking(block)
		}

		result, err := o.checker.Check(ctx, block)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", block.Location(), err)
		}

		summary.Record(result)
		if !result.Passed {
			o.logger.LogDebug(fmt.Sprintf("%s failed shellcheck", block.Location()))
		}
		if o.reporter != nil {
			o.reporter.Result(result)
		}
	}
	return nil
}
