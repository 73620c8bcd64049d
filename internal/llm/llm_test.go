package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/captionkit/internal/config"
)

var testImage = Image{Data: []byte("\x89PNG fake"), MIMEType: "image/png"}

func TestImageDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,iVBORyBmYWtl", testImage.DataURL())
}

func TestNewVisionRequest(t *testing.T) {
	req := NewVisionRequest("m", "sys", "user", testImage)

	require.Len(t, req.Messages, 2)
	assert.Empty(t, req.Messages[0].Images)
	assert.Equal(t, []Image{testImage}, req.Messages[1].Images)
	assert.Equal(t, "m", req.Model)
}

func TestOpenAICompatibleSendsImagePart(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"vision-1",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"[CAPTION] a\nb"}}],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer srv.Close()

	p := NewCustomProvider(srv.URL+"/v1", "k", "vision-1")
	resp, err := p.Complete(context.Background(), NewVisionRequest("", "sys", "describe", testImage))
	require.NoError(t, err)

	assert.Equal(t, "[CAPTION] a\nb", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "custom", p.Name())

	assert.Equal(t, "vision-1", body["model"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	user := msgs[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].(map[string]any)["type"])
	img := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, testImage.DataURL(), img["url"])
}

func TestOpenAICompatibleError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p := NewCustomProvider(srv.URL, "k", "m")
	_, err := p.Complete(context.Background(), NewRequest("", "s", "u"))
	assert.Error(t, err)
}

func TestAnthropicComplete(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		io.WriteString(w, `{"model":"claude-x","content":[{"type":"text","text":"hello "},{"type":"text","text":"there"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("k", "claude-x")
	p.baseURL = srv.URL

	resp, err := p.Complete(context.Background(), NewVisionRequest("", "be nice", "caption this", testImage))
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Content)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
	assert.Equal(t, "be nice", got.System)
	require.Len(t, got.Messages, 1)
	blocks := got.Messages[0].Content
	require.Len(t, blocks, 2)
	assert.Equal(t, "image", blocks[0].Type)
	assert.Equal(t, "image/png", blocks[0].Source.MediaType)
	assert.Equal(t, testImage.Base64(), blocks[0].Source.Data)
	assert.Equal(t, "caption this", blocks[1].Text)
}

func TestAnthropicErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", 529)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("k", "")
	p.baseURL = srv.URL

	_, err := p.Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "529")
}

func TestOllamaComplete(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"model":"llava","message":{"role":"assistant","content":"ok"},"done":true,"done_reason":"stop","prompt_eval_count":7,"eval_count":3}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	resp, err := p.Complete(context.Background(), NewVisionRequest("", "s", "u", testImage))
	require.NoError(t, err)

	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 10, resp.Usage.TotalTokens)
	assert.Equal(t, "llava", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Empty(t, got.Messages[0].Images)
	assert.Equal(t, []string{testImage.Base64()}, got.Messages[1].Images)
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"models":[]}`)
	}))
	defer srv.Close()

	assert.NoError(t, NewOllamaProvider(srv.URL, "").Ping(context.Background()))
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	gen, err := m.Complete(context.Background(), NewRequest("", "s", "write captions"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(gen.Content, "[CAPTION]"))
	assert.NotContains(t, gen.Content, "[VERSION")

	imp, err := m.Complete(context.Background(), NewRequest("", "s", "use [VERSION <number> - name]"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(imp.Content, "[VERSION"))

	m.Reply = "custom"
	out, err := m.Complete(context.Background(), NewRequest("", "s", "u"))
	require.NoError(t, err)
	assert.Equal(t, "custom", out.Content)
	assert.Len(t, m.Requests(), 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Complete(ctx, NewRequest("", "s", "u"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{config.Config{Provider: "openai", APIKey: "k"}, "openai", false},
		{config.Config{Provider: "openai"}, "", true},
		{config.Config{Provider: "groq", APIKey: "k"}, "groq", false},
		{config.Config{Provider: "openrouter", APIKey: "k"}, "openrouter", false},
		{config.Config{Provider: "anthropic", APIKey: "k"}, "anthropic", false},
		{config.Config{Provider: "ollama"}, "ollama", false},
		{config.Config{Provider: "custom"}, "", true},
		{config.Config{Provider: "custom", BaseURL: "http://x"}, "custom", false},
		{config.Config{Provider: "mock"}, "mock", false},
		{config.Config{Provider: "zz"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Provider, func(t *testing.T) {
			p, err := NewProvider(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
