package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory(t *testing.T) {
	p, err := NewFactory(Config{Provider: "none"}).CreateProvider()
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewFactory(Config{}).CreateProvider()
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewFactory(Config{Provider: "ollama"}).CreateProvider()
	assert.Error(t, err)

	_, err = NewFactory(Config{Provider: "anthropic"}).CreateProvider()
	assert.Error(t, err)

	_, err = NewFactory(Config{Provider: "gpt"}).CreateProvider()
	assert.ErrorContains(t, err, "unknown provider")

	p, err = NewFactory(Config{Provider: "Ollama", OllamaURL: "http://localhost:11434"}).CreateProvider()
	require.NoError(t, err)
	assert.Equal(t, "Ollama (llama3)", p.Name())
}

func TestBuildNarrationPrompt(t *testing.T) {
	prompt := BuildNarrationPrompt("", "• Pricing: 3 mentions")
	assert.Contains(t, prompt, "• Pricing: 3 mentions")
	assert.NotContains(t, prompt, ReportPlaceholder)

	assert.Equal(t, "Summarize: x", BuildNarrationPrompt("Summarize: {REPORT}", "x"))
}

func TestValidatePromptTemplate(t *testing.T) {
	require.NoError(t, ValidatePromptTemplate(DefaultNarrationPromptTemplate))
	require.NoError(t, ValidatePromptTemplate("Notes for {REPORT} please"))
	assert.Error(t, ValidatePromptTemplate("Write analyst notes"))
	assert.Error(t, ValidatePromptTemplate("{report}"))
}

func TestFactory_PromptTemplate(t *testing.T) {
	_, err := NewFactory(Config{
		Provider:       "ollama",
		OllamaURL:      "http://localhost:11434",
		PromptTemplate: "Write analyst notes",
	}).CreateProvider()
	assert.ErrorContains(t, err, ReportPlaceholder)

	p, err := NewFactory(Config{
		Provider:       "ollama",
		OllamaURL:      "http://localhost:11434",
		PromptTemplate: "Notes: {REPORT}",
	}).CreateProvider()
	require.NoError(t, err)
	assert.Equal(t, "Notes: {REPORT}", p.(*OllamaProvider).template)

	p, err = NewFactory(Config{Provider: "none", PromptTemplate: "unused"}).CreateProvider()
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestOllamaNarrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "REPORT BODY")

		json.NewEncoder(w).Encode(ollamaResponse{Response: "  *Headline:* pricing  \n", Done: true})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "mistral")
	notes, err := p.Narrate(context.Background(), "REPORT BODY")
	require.NoError(t, err)
	assert.Equal(t, "*Headline:* pricing", notes)
}

func TestOllamaNarrate_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Narrate(context.Background(), "r")
	assert.ErrorContains(t, err, "404")
}

func TestAnthropicNarrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "Notes on: report", req.Messages[0].Content)

		io.WriteString(w, `{"id":"m1","type":"message","role":"assistant",
			"content":[{"type":"text","text":"Focus on "},{"type":"text","text":"pricing."}]}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("sk-test", "claude-test")
	p.url = srv.URL
	p.template = "Notes on: {REPORT}"

	notes, err := p.Narrate(context.Background(), "report")
	require.NoError(t, err)
	assert.Equal(t, "Focus on pricing.", notes)
}

type fakeBedrock struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeBedrock) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestBedrockNarrate(t *testing.T) {
	fake := &fakeBedrock{body: `{"content":[{"type":"text","text":"Fix exports first."}]}`}
	p := &BedrockProvider{client: fake, model: "anthropic.test"}

	notes, err := p.Narrate(context.Background(), "report")
	require.NoError(t, err)
	assert.Equal(t, "Fix exports first.", notes)

	assert.Equal(t, "anthropic.test", *fake.input.ModelId)
	var req claudeRequest
	require.NoError(t, json.Unmarshal(fake.input.Body, &req))
	assert.Equal(t, bedrockAnthropicVersion, req.AnthropicVersion)
	assert.Empty(t, req.Model)

	fake.err = errors.New("throttled")
	_, err = p.Narrate(context.Background(), "report")
	assert.ErrorContains(t, err, "throttled")
}

func TestDecodeClaudeText_Empty(t *testing.T) {
	_, err := decodeClaudeText([]byte(`{"content":[]}`))
	assert.Error(t, err)

	_, err = decodeClaudeText([]byte(`not json`))
	assert.Error(t, err)
}
