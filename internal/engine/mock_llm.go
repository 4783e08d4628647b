package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns deterministic results based on product name keywords.
type MockClassifier struct {
	// Err, when set, is returned by every Classify call.
	Err error
	// Codes maps a lowercase product-name substring to the catalog code
	// the mock should select. Unmatched names yield the sentinel.
	Codes   map[string]string
	catalog *catalog.Catalog
	calls   []MockCall
	mu      sync.Mutex
}

// MockCall records details of a classification request.
type MockCall struct {
	ProductName    string
	ProductContext string
	OverrideBlock  string
	Blocks         catalog.CandidateBlocks
}

// NewMockClassifier creates a mock bound to a catalog.
func NewMockClassifier(cat *catalog.Catalog) *MockClassifier {
	return &MockClassifier{
		Codes:   make(map[string]string),
		catalog: cat,
	}
}

// Classify returns a deterministic result for the product name.
func (m *MockClassifier) Classify(_ context.Context, req model.ClassificationRequest, blocks catalog.CandidateBlocks, overrideBlock string) (model.ClassificationResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{
		ProductName:    req.ProductName,
		ProductContext: req.ProductContext,
		OverrideBlock:  overrideBlock,
		Blocks:         blocks,
	})
	m.mu.Unlock()

	if m.Err != nil {
		return model.ClassificationResult{}, m.Err
	}

	nameLower := strings.ToLower(req.ProductName)
	for keyword, code := range m.Codes {
		if !strings.Contains(nameLower, keyword) {
			continue
		}
		if entry, ok := m.catalog.Lookup(code); ok {
			return model.ClassificationResult{
				ResolvedAt:          time.Now().UTC(),
				OriginalProductName: req.ProductName,
				AnalysisText:        "Matched by keyword " + keyword + ".",
				CodeAndDescription:  entry.Pairing(),
				Status:              model.StatusResolvedByAI,
			}, nil
		}
	}

	return model.ClassificationResult{
		ResolvedAt:          time.Now().UTC(),
		OriginalProductName: req.ProductName,
		AnalysisText:        "No candidate was a reasonable match.",
		CodeAndDescription:  model.Sentinel(),
		Status:              model.StatusUnclassified,
	}, nil
}

// Calls returns a copy of the recorded classification requests.
func (m *MockClassifier) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Classify invocations.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
