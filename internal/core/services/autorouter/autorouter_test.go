package autorouter

import (
	"context"
	"errors"
	"testing"

	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClassifier implements ports.Classifier for testing
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Ready() error {
	return m.Called().Error(0)
}

func (m *MockClassifier) Classify(ctx context.Context, prompt string) (*ports.Classification, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Classification), args.Error(1)
}

type staticCatalog struct {
	records []domain.ModelRecord
	err     error
}

func (s staticCatalog) Catalog(ctx context.Context) ([]domain.ModelRecord, error) {
	return s.records, s.err
}

func TestSelectOptimalModel_Coding(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("Ready").Return(nil)
	classifier.On("Classify", mock.Anything, "write a quicksort in go").Return(&ports.Classification{
		Category: domain.CategoryCoding,
		Model:    "openai/gpt-4o-mini",
		Usage:    domain.TokenUsage{PromptTokens: 80, CompletionTokens: 1},
	}, nil).Once()

	catalog := staticCatalog{records: []domain.ModelRecord{
		{ID: "a", Name: "A", Provider: "p", CodingIndex: floatPtr(0.9)},
		{ID: "b", Name: "B", Provider: "p", CodingIndex: floatPtr(0.95)},
		{ID: "c", Name: "C", Provider: "p"},
	}}

	svc := NewService(catalog, classifier, nil)
	result, err := svc.SelectOptimalModel(context.Background(), "write a quicksort in go")
	require.NoError(t, err)

	assert.Equal(t, "b", result.SelectedModelID)
	assert.Equal(t, domain.CategoryCoding, result.Category)
	assert.NotEmpty(t, result.Reasoning)
	assert.Equal(t, "openai/gpt-4o-mini", result.ClassifierModel)
	assert.Equal(t, 80, result.Usage.PromptTokens)
	classifier.AssertExpectations(t)
}

func TestSelectOptimalModel_EmptyCatalog(t *testing.T) {
	for _, category := range domain.Categories {
		classifier := new(MockClassifier)
		classifier.On("Ready").Return(nil)
		classifier.On("Classify", mock.Anything, mock.Anything).Return(&ports.Classification{Category: category}, nil)

		svc := NewService(staticCatalog{}, classifier, nil)
		_, err := svc.SelectOptimalModel(context.Background(), "hello")
		assert.True(t, domain.IsKind(err, domain.KindNoEligibleModel), category)
	}
}

func TestSelectOptimalModel_GeneralTieBreak(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("Ready").Return(nil)
	classifier.On("Classify", mock.Anything, mock.Anything).Return(&ports.Classification{Category: domain.CategoryGeneral}, nil)

	catalog := staticCatalog{records: []domain.ModelRecord{
		{ID: "openai/x", Name: "X", Provider: "openai", Rank: intPtr(1)},
		{ID: "google/y", Name: "Y", Provider: "google", Rank: intPtr(1)},
	}}

	result, err := NewService(catalog, classifier, nil).SelectOptimalModel(context.Background(), "tell me a story")
	require.NoError(t, err)
	assert.Equal(t, "google/y", result.SelectedModelID)
}

func TestSelectOptimalModel_Failures(t *testing.T) {
	upstream := domain.UpstreamStatusError(429, "rate limited", nil)

	cases := map[string]struct {
		prompt     string
		ready      error
		catalogErr error
		classify   error
		kind       domain.Kind
		classified bool
	}{
		"empty prompt":       {prompt: "  \n", kind: domain.KindInvalidInput},
		"invalid utf8":       {prompt: "\xff\xfe", kind: domain.KindInvalidInput},
		"missing credential": {prompt: "hi", ready: domain.ConfigError("no key"), kind: domain.KindConfig},
		"catalog down":       {prompt: "hi", catalogErr: upstream, kind: domain.KindUpstreamUnavailable},
		"classifier failed": {
			prompt:     "hi",
			classify:   domain.ClassificationError("Classifier request failed", errors.New("500")),
			kind:       domain.KindClassificationFailed,
			classified: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			classifier := new(MockClassifier)
			classifier.On("Ready").Return(tc.ready).Maybe()
			classifier.On("Classify", mock.Anything, mock.Anything).Return(nil, tc.classify).Maybe()

			catalog := staticCatalog{
				records: []domain.ModelRecord{{ID: "a", Provider: "p", Rank: intPtr(1)}},
				err:     tc.catalogErr,
			}

			result, err := NewService(catalog, classifier, nil).SelectOptimalModel(context.Background(), tc.prompt)
			assert.Nil(t, result)
			assert.True(t, domain.IsKind(err, tc.kind), "got %v", err)
			if tc.classified {
				classifier.AssertNumberOfCalls(t, "Classify", 1)
			} else {
				classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
			}
		})
	}
}
