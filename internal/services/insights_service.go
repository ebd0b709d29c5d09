package services

import (
	"context"

	apperrors "pencil/internal/errors"
	"pencil/internal/insights"
	"pencil/internal/logger"
)

// insightsService runs one insights request end to end: aggregate, prompt,
// call the model, normalize, and fall back when anything past the prompt
// fails.
type insightsService struct {
	summary   SummaryServicer
	completer insights.Completer
}

// NewInsightsService creates a new InsightsServicer. A nil completer means no
// model is configured and every request fails with INSIGHTS_UNAVAILABLE.
func NewInsightsService(summary SummaryServicer, completer insights.Completer) InsightsServicer {
	return &insightsService{summary: summary, completer: completer}
}

// GenerateInsights builds the insights report for the current records.
func (s *insightsService) GenerateInsights(ctx context.Context) (*InsightsResult, error) {
	if s.completer == nil {
		return nil, apperrors.ErrInsightsUnavailable
	}

	agg, err := s.summary.Aggregates()
	if err != nil {
		return nil, err
	}

	completion, callErr := s.completer.Complete(ctx, insights.BuildPrompt(agg))
	res := insights.Normalize(agg, completion, callErr)

	result := &InsightsResult{
		Success:  true,
		Source:   res.Source,
		Insights: res.Report,
	}
	if res.Err != nil {
		result.Error = res.Err.Error()
		logger.Get().Warnw("Insights fell back to local report",
			"kind", res.Err.Kind,
			"error", res.Err,
		)
	}
	return result, nil
}
