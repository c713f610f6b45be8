// Package analysis runs the pain pipeline over a batch of ingested records:
// scoring, praise filtering, aggregation and calibration.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/services/aggregate"
	"github.com/ternarybob/painscope/internal/services/calibration"
	"github.com/ternarybob/painscope/internal/services/pain"
	"github.com/ternarybob/painscope/internal/services/viability"
)

// SignalFilter removes signals that are not complaints. praise.Filter satisfies it.
type SignalFilter interface {
	FilterSignals(ctx context.Context, signals []models.PainSignal) []models.PainSignal
}

// Result is the outcome of one analysis run
type Result struct {
	RunID         string                     `json:"run_id"`
	Records       int                        `json:"records"`
	Signals       []models.PainSignal        `json:"signals"`
	NoSignal      int                        `json:"no_signal"`      // records at or below the minimum score
	PraiseRemoved int                        `json:"praise_removed"` // signals dropped by the praise filter
	Summary       models.PainSummary         `json:"summary"`
	Calibrated    models.CalibratedPainScore `json:"calibrated"`
	Pain          *models.DimensionInput     `json:"pain"`
}

// Analyzer wires the scoring services together
type Analyzer struct {
	scorer     *pain.Scorer
	filter     SignalFilter
	summarizer *aggregate.Summarizer
	calibrator *calibration.Calibrator
	minScore   float64
	logger     arbor.ILogger
	now        func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithFilter enables praise filtering. A nil filter leaves every signal in place.
func WithFilter(filter SignalFilter) Option {
	return func(a *Analyzer) {
		a.filter = filter
	}
}

// WithClock overrides the reference time used for recency
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates an analyzer from the scoring, aggregation and calibration settings
func NewAnalyzer(config *common.Config, logger arbor.ILogger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = common.GetLogger()
	}

	a := &Analyzer{
		scorer:     pain.NewScorer(config.Scoring),
		summarizer: aggregate.NewSummarizer(config.Aggregation),
		calibrator: calibration.NewCalibrator(config.Calibration),
		minScore:   config.Scoring.MinSignalScore,
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze scores every record and reduces the resulting signals to a calibrated pain score.
// Only context cancellation produces an error; embedding failures fail open inside the filter.
func (a *Analyzer) Analyze(ctx context.Context, records []models.RawRecord) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:   common.NewRunID(),
		Records: len(records),
	}

	a.logger.Info().
		Str("run_id", result.RunID).
		Int("records", len(records)).
		Msg("Starting pain analysis")

	signals := make([]models.PainSignal, 0, len(records))
	for _, record := range records {
		signal := a.scorer.ScoreRecord(record)
		if signal.Score <= a.minScore {
			result.NoSignal++
			continue
		}
		signals = append(signals, signal)
	}

	a.logger.Info().
		Str("run_id", result.RunID).
		Int("signals", len(signals)).
		Int("no_signal", result.NoSignal).
		Msg("Records scored")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.filter != nil {
		before := len(signals)
		signals = a.filter.FilterSignals(ctx, signals)
		result.PraiseRemoved = before - len(signals)

		a.logger.Info().
			Str("run_id", result.RunID).
			Int("kept", len(signals)).
			Int("removed", result.PraiseRemoved).
			Msg("Praise filter applied")

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	result.Signals = signals
	result.Summary = a.summarizer.SummarizeAt(signals, a.now())
	result.Calibrated = a.calibrator.Calibrate(result.Summary)
	result.Pain = viability.PainDimension(result.Calibrated, result.Summary)

	a.logger.Info().
		Str("run_id", result.RunID).
		Str("score", fmt.Sprintf("%.1f", result.Calibrated.Score)).
		Str("confidence", string(result.Calibrated.Confidence)).
		Dur("duration", time.Since(start)).
		Msg("Pain analysis complete")

	return result, nil
}
