// Package autorouter picks a model for a prompt: it classifies the prompt
// with a remote chat model and scores the ranked catalog for that category.
package autorouter

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service runs one routing decision per call and keeps no state between calls.
type Service struct {
	catalog    ports.CatalogSource
	classifier ports.Classifier
	logger     *zap.Logger
	tracer     trace.Tracer
}

var _ ports.Autorouter = (*Service)(nil)

func NewService(catalog ports.CatalogSource, classifier ports.Classifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:    catalog,
		classifier: classifier,
		logger:     logger,
		tracer:     otel.Tracer("github.com/nulzo/autorouter/autorouter"),
	}
}

// SelectOptimalModel validates the prompt, loads the ranked catalog, makes
// exactly one classifier call and selects a model. Every failure is a
// *domain.Error and nothing is retried.
func (s *Service) SelectOptimalModel(ctx context.Context, prompt string) (*domain.AutorouteResult, error) {
	ctx, span := s.tracer.Start(ctx, "autorouter.SelectOptimalModel")
	defer span.End()

	start := time.Now()

	result, err := s.route(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "routing failed")
		s.logger.Warn("Autoroute failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("autoroute.category", string(result.Category)),
		attribute.String("autoroute.model", result.SelectedModelID),
		attribute.Float64("autoroute.confidence", result.Confidence),
	)
	s.logger.Info("Autoroute selected model",
		zap.String("model", result.SelectedModelID),
		zap.String("category", string(result.Category)),
		zap.Float64("confidence", result.Confidence),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

func (s *Service) route(ctx context.Context, prompt string) (*domain.AutorouteResult, error) {
	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}
	if err := s.classifier.Ready(); err != nil {
		return nil, err
	}

	records, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	candidates := domain.RankedModels(records)

	classification, err := s.classifier.Classify(ctx, prompt)
	if err != nil {
		return nil, err
	}

	selection, err := SelectModel(classification.Category, candidates)
	if err != nil {
		return nil, err
	}

	return &domain.AutorouteResult{
		SelectedModelID: selection.Model.ID,
		Category:        classification.Category,
		Confidence:      selection.Confidence,
		Reasoning:       selection.Reasoning,
		ClassifierModel: classification.Model,
		Usage:           classification.Usage,
	}, nil
}

func validatePrompt(prompt string) error {
	if !utf8.ValidString(prompt) {
		return domain.InvalidInputError("Prompt must be valid UTF-8 text")
	}
	if strings.TrimSpace(prompt) == "" {
		return domain.InvalidInputError("Prompt is required")
	}
	return nil
}
