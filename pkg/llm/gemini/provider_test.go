package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chimera-chat-be/pkg/llm"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider := NewGeminiProvider("test-key", "gemini-2.5-flash")
	provider.BaseURL = srv.URL
	return provider
}

func TestAskBuildsMultimodalRequest(t *testing.T) {
	var captured geminiRequest

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q, want %q", got, "test-key")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []*geminiCandidate{
				{Content: &geminiContent{Parts: []*geminiPart{{Text: "Hull breach confirmed."}}}},
			},
		})
	})

	reply, err := provider.Ask(context.Background(), llm.Request{
		Question: "What is this damage?",
		ImageB64: "aGVsbG8=",
		MimeType: "image/png",
	},
		llm.WithSystemInstruction("You are the onboard assistant."),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if reply != "Hull breach confirmed." {
		t.Errorf("reply = %q", reply)
	}

	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "You are the onboard assistant." {
		t.Error("system instruction not sent out-of-band")
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.Temperature != 0.1 || captured.GenerationConfig.MaxOutputTokens != 1000 {
		t.Errorf("generation config = %+v", captured.GenerationConfig)
	}
	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 2 {
		t.Fatalf("contents shape = %+v", captured.Contents)
	}
	if captured.Contents[0].Parts[0].Text != "User Question: What is this damage?" {
		t.Errorf("question part = %q", captured.Contents[0].Parts[0].Text)
	}
	image := captured.Contents[0].Parts[1].InlineData
	if image == nil || image.Data != "aGVsbG8=" || image.MimeType != "image/png" {
		t.Errorf("image part = %+v", image)
	}
}

func TestAskTextOnlyOmitsImagePart(t *testing.T) {
	var captured geminiRequest

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []*geminiCandidate{
				{Content: &geminiContent{Parts: []*geminiPart{{Text: "Systems nominal."}}}},
			},
		})
	})

	_, err := provider.Ask(context.Background(), llm.Request{Question: "status?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(captured.Contents[0].Parts) != 1 {
		t.Errorf("text-only request should carry a single part, got %d", len(captured.Contents[0].Parts))
	}
	if captured.Contents[0].Parts[0].Text != "status?" {
		t.Errorf("text-only question should be sent bare, got %q", captured.Contents[0].Parts[0].Text)
	}
}

func TestAskStatusError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	if _, err := provider.Ask(context.Background(), llm.Request{Question: "status?"}); err == nil {
		t.Fatal("Ask() expected error on non-200 status")
	}
}

func TestAskEmptyCandidates(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	})

	if _, err := provider.Ask(context.Background(), llm.Request{Question: "status?"}); err == nil {
		t.Fatal("Ask() expected error on empty candidates")
	}
}
