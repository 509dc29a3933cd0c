// =============================================================================
// Book Review Stats - Pipeline Module
// =============================================================================
//
// This module orchestrates a full run over one input file, from loading to
// the per-book purchase counts.
//
// PIPELINE:
//   1. Load the file into a typed table
//   2. Describe the raw table (diagnostics only, nothing is changed)
//   3. Project the configured columns into review records
//   4. Drop records with a missing review
//   5. Normalise state names to postal codes
//   6. Score reviews and flag high reviews
//   7. Validate the cleaned records
//   8. Count purchases per book
//
// Every log line of a run carries the same run_id.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/bookstats/internal/aggregate"
	"github.com/ginjaninja78/bookstats/internal/cleaning"
	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/inspect"
	"github.com/ginjaninja78/bookstats/internal/loader"
	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/ginjaninja78/bookstats/internal/validation"
)

// ErrValidationFailed is returned by Run when the cleaned records fail
// validation. The Result is still returned so the issues can be reported.
var ErrValidationFailed = errors.New("validation failed")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Path is the input file.
	Path string

	// Raw describes the table as loaded.
	Raw inspect.Summary

	// Cleaned describes the table after cleaning and scoring.
	Cleaned inspect.Summary

	// Reviews are the cleaned records.
	Reviews []types.Review

	// Counts are the purchases per book, best seller first.
	Counts []types.BookCount

	Validation *validation.Result

	Stats Stats
}

// Stats contains counters collected during the run.
type Stats struct {
	RowsLoaded  int
	RowsDropped int
	RowsCleaned int

	StatesMapped       int
	StatesAlreadyCoded int

	// UnrecognizedStates lists distinct state values that were neither
	// mapped nor already a code.
	UnrecognizedStates []string

	UnmappedReviews int
	HighReviews     int

	Groups int

	Duration time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Pipeline runs the cleaning and aggregation steps with one configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *zap.Logger

	// Strict makes validation warnings fail the run.
	Strict bool
}

// New creates a new Pipeline. A nil logger discards all output.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file at path.
//
// RETURNS:
//   - The Result. It is nil only when the file could not be loaded or lacks
//     a required column.
//   - An error wrapping ErrValidationFailed when validation fails; the
//     Result is complete in that case.
func (p *Pipeline) Run(path string) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := p.logger.With(zap.String("run_id", runID), zap.String("path", path))

	result := &Result{RunID: runID, Path: path}

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	log.Info("Loading dataset")

	table, err := loader.Load(path, p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	result.Stats.RowsLoaded = table.Rows()
	log.Debug("Loaded table", zap.Int("rows", table.Rows()), zap.Int("cols", table.Cols()))

	// =========================================================================
	// STEP 2: DESCRIBE RAW TABLE
	// =========================================================================

	result.Raw = inspect.Describe(table, p.cfg.Inspect.MaxUnique)
	log.Debug("Described raw table", zap.Int("missing", result.Raw.Missing()))

	// =========================================================================
	// STEP 3: PROJECT COLUMNS
	// =========================================================================

	reviews, err := table.Reviews(p.cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews from %s: %w", path, err)
	}

	// =========================================================================
	// STEP 4: DROP MISSING REVIEWS
	// =========================================================================

	reviews, dropped := cleaning.DropMissingReviews(reviews)
	result.Stats.RowsDropped = dropped
	log.Debug("Dropped rows with missing review", zap.Int("dropped", dropped))

	// =========================================================================
	// STEP 5: NORMALISE STATES
	// =========================================================================

	states := cleaning.NewStateNormalizer(p.cfg.States).Apply(reviews)
	result.Stats.StatesMapped = states.Mapped
	result.Stats.StatesAlreadyCoded = states.AlreadyCoded
	result.Stats.UnrecognizedStates = states.Unrecognized

	if len(states.Unrecognized) > 0 {
		log.Warn("Unrecognized state values left unchanged",
			zap.Strings("values", states.Unrecognized),
			zap.Int("rows", states.UnrecognizedRows))
	}

	// =========================================================================
	// STEP 6: SCORE REVIEWS
	// =========================================================================

	scores := cleaning.NewReviewScorer(p.cfg.Reviews.Scale, p.cfg.Reviews.HighThreshold).Apply(reviews)
	result.Stats.UnmappedReviews = scores.Unmapped
	result.Stats.HighReviews = scores.High

	if scores.Unmapped > 0 {
		log.Warn("Review categories without a score",
			zap.Strings("values", scores.UnmappedValues),
			zap.Int("rows", scores.Unmapped))
	}

	result.Reviews = reviews
	result.Stats.RowsCleaned = len(reviews)

	cleaned := loader.FromReviews(reviews, p.cfg.Columns)
	cleaned.Source = table.Source
	result.Cleaned = inspect.Describe(cleaned, p.cfg.Inspect.MaxUnique)

	// =========================================================================
	// STEP 7: VALIDATE
	// =========================================================================

	validator := validation.NewValidator(validation.Options{
		HighThreshold:         p.cfg.Reviews.HighThreshold,
		TreatWarningsAsErrors: p.Strict,
	})
	result.Validation = validator.Validate(reviews)

	for _, issue := range result.Validation.Errors() {
		log.Warn("Validation error", zap.Int("row", issue.Row), zap.String("rule", issue.Rule), zap.String("value", issue.Value))
	}
	log.Debug("Validation complete",
		zap.Int("errors", result.Validation.ErrorCount),
		zap.Int("warnings", result.Validation.WarningCount))

	// =========================================================================
	// STEP 8: AGGREGATE
	// =========================================================================

	result.Counts = aggregate.CountByBook(reviews)
	result.Stats.Groups = len(result.Counts)

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Stats.Duration = time.Since(start)

	log.Info("Run complete",
		zap.Int("rows", result.Stats.RowsLoaded),
		zap.Int("dropped", result.Stats.RowsDropped),
		zap.Int("groups", result.Stats.Groups),
		zap.Duration("duration", result.Stats.Duration))

	if !result.Validation.IsValid {
		return result, fmt.Errorf("%w: %d error(s), %d warning(s)",
			ErrValidationFailed, result.Validation.ErrorCount, result.Validation.WarningCount)
	}

	return result, nil
}

// Best returns the best-selling book, or false when no records survived
// cleaning.
func (r *Result) Best() (types.BookCount, bool) {
	return aggregate.BestSeller(r.Counts)
}

// WriteStats prints the cleaning counters.
func (r *Result) WriteStats(w io.Writer) error {
	s := r.Stats
	_, err := fmt.Fprintf(w, "Cleaning:\n"+
		"  Rows loaded:          %d\n"+
		"  Dropped (no review):  %d\n"+
		"  Rows cleaned:         %d\n"+
		"  States mapped:        %d\n"+
		"  States already coded: %d\n"+
		"  Unrecognized states:  %d\n"+
		"  Unscored reviews:     %d\n"+
		"  High reviews:         %d\n"+
		"  Books:                %d\n",
		s.RowsLoaded, s.RowsDropped, s.RowsCleaned,
		s.StatesMapped, s.StatesAlreadyCoded, len(s.UnrecognizedStates),
		s.UnmappedReviews, s.HighReviews, s.Groups)
	return err
}
