package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/ingest"
	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/report"
	"github.com/ternarybob/painscope/internal/services/analysis"
	"github.com/ternarybob/painscope/internal/services/embeddings"
	"github.com/ternarybob/painscope/internal/services/praise"
	"github.com/ternarybob/painscope/internal/services/resonance"
	"github.com/ternarybob/painscope/internal/services/viability"
)

type runOptions struct {
	recordsPath    string
	themesPath     string
	dimensionsPath string
}

// run loads the inputs, analyzes the records and assembles the report
func run(ctx context.Context, config *common.Config, logger arbor.ILogger, opts runOptions) (*report.Report, error) {
	records, err := ingest.LoadRecords(opts.recordsPath, logger)
	if err != nil {
		return nil, err
	}

	var themes []models.Theme
	if opts.themesPath != "" {
		if themes, err = ingest.LoadThemes(opts.themesPath); err != nil {
			return nil, err
		}
	}

	dimensions, err := loadDimensions(opts.dimensionsPath)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	var analyzerOpts []analysis.Option
	if filter := newPraiseFilter(ctx, config, logger, registry); filter != nil {
		analyzerOpts = append(analyzerOpts, analysis.WithFilter(filter))
	}

	result, err := analysis.NewAnalyzer(config, logger, analyzerOpts...).Analyze(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	logMetrics(registry, logger)

	inputs := dimensions.Inputs()
	inputs.Pain = result.Pain

	return &report.Report{
		RunID:      result.RunID,
		Verdict:    viability.Calculate(inputs),
		Summary:    result.Summary,
		Calibrated: result.Calibrated,
		Themes:     resonance.NewCalculator(config.Resonance).Calculate(themes, result.Signals),
	}, nil
}

// newPraiseFilter returns nil when the filter is disabled or no embedding backend can be built
func newPraiseFilter(ctx context.Context, config *common.Config, logger arbor.ILogger, registry prometheus.Registerer) *praise.Filter {
	if !config.PraiseFilter.Enabled {
		logger.Info().Msg("Praise filter disabled")
		return nil
	}

	backend, err := embeddings.NewBackend(ctx, &config.Embeddings, logger)
	if err != nil {
		logger.Info().
			Err(err).
			Str("provider", string(config.Embeddings.Provider)).
			Msg("Praise filter skipped: no embedding backend available")
		return nil
	}

	service := embeddings.NewService(backend, config.Embeddings.Dimension, logger)
	anchors := praise.NewAnchorCache(service, config.PraiseFilter.PraiseAnchor, config.PraiseFilter.ComplaintAnchor)

	logger.Info().
		Str("provider", string(config.Embeddings.Provider)).
		Str("model", backend.ModelName()).
		Msg("Praise filter enabled")

	return praise.NewFilter(service, anchors, config.PraiseFilter, logger,
		praise.WithMetrics(praise.NewMetrics(registry)),
		praise.WithMaxBatchSize(config.Embeddings.MaxBatchSize),
	)
}

func logMetrics(registry *prometheus.Registry, logger arbor.ILogger) {
	families, err := registry.Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to gather praise filter metrics")
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := logger.Debug().Str("metric", family.GetName())
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				event = event.Str("value", fmt.Sprintf("%.0f", metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				event = event.Int64("samples", int64(metric.GetHistogram().GetSampleCount()))
			}
			event.Msg("Praise filter metric")
		}
	}
}
