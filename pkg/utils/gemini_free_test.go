package utils

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

type fakeModelIterator struct {
	models []*genai.ModelInfo
	err    error
}

func (f *fakeModelIterator) Next() (*genai.ModelInfo, error) {
	if len(f.models) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, iterator.Done
	}
	m := f.models[0]
	f.models = f.models[1:]
	return m, nil
}

func TestPlanFromGeminiJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("1. Coffee. "), genai.Blob{MIMEType: "image/png"}, genai.Text("2. Museum.")}},
		}},
	}

	got, err := planFromGemini(resp)
	if err != nil {
		t.Fatalf("planFromGemini: %v", err)
	}
	if got != "1. Coffee. 2. Museum." {
		t.Fatalf("plan: want=%q got=%q", "1. Coffee. 2. Museum.", got)
	}
}

func TestPlanFromGeminiEmptyIsMalformed(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"blank text":    {Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}}},
	}
	for name, resp := range cases {
		_, err := planFromGemini(resp)
		if !errors.Is(err, ErrProviderMalformed) {
			t.Fatalf("%s: expected ErrProviderMalformed, got=%v", name, err)
		}
	}
}

func TestClassifyGeminiError(t *testing.T) {
	blocked := &genai.BlockedError{Candidate: &genai.Candidate{FinishReason: genai.FinishReasonSafety}}
	if err := classifyGeminiError(blocked); !errors.Is(err, ErrProviderMalformed) {
		t.Fatalf("blocked: expected ErrProviderMalformed, got=%v", err)
	}

	err := classifyGeminiError(errors.New("rpc error: code = PermissionDenied desc = API key not valid"))
	if !errors.Is(err, ErrProviderTransport) {
		t.Fatalf("transport: expected ErrProviderTransport, got=%v", err)
	}
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) || providerErr.Message != "rpc error: code = PermissionDenied desc = API key not valid" {
		t.Fatalf("message not kept verbatim: %v", err)
	}
}

func TestCollectGeminiModelsFiltersGenerateContent(t *testing.T) {
	it := &fakeModelIterator{models: []*genai.ModelInfo{
		{Name: "models/gemini-1.5-flash", SupportedGenerationMethods: []string{"generateContent", "countTokens"}},
		{Name: "models/text-embedding-004", SupportedGenerationMethods: []string{"embedContent"}},
		{Name: "models/gemini-1.5-pro", SupportedGenerationMethods: []string{"generateContent"}},
	}}

	got, err := collectGeminiModels(it)
	if err != nil {
		t.Fatalf("collectGeminiModels: %v", err)
	}
	want := []string{"gemini-1.5-flash", "gemini-1.5-pro"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want=%v got=%v", want, got)
	}
}

func TestCollectGeminiModelsErrors(t *testing.T) {
	if _, err := collectGeminiModels(&fakeModelIterator{err: errors.New("unavailable")}); !errors.Is(err, ErrProviderTransport) {
		t.Fatalf("expected ErrProviderTransport, got=%v", err)
	}
	only := &fakeModelIterator{models: []*genai.ModelInfo{{Name: "models/embedding-001", SupportedGenerationMethods: []string{"embedContent"}}}}
	if _, err := collectGeminiModels(only); !errors.Is(err, ErrProviderMalformed) {
		t.Fatalf("expected ErrProviderMalformed, got=%v", err)
	}
}
