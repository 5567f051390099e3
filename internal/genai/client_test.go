package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"world"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.GenerateContent(context.Background(), "test-key", "gemini-2.5-flash", &Request{
		Contents: []Content{{Parts: []Part{{Text: "hello"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text())
	assert.Empty(t, resp.FinishReason())
}

func TestGenerateContent_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GenerateContent(context.Background(), "bad-key", "gemini-2.5-flash", &Request{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "API key not valid")
}

func TestGenerateContent_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GenerateContent(context.Background(), "key", "m", &Request{})
	assert.Error(t, err)
}

func TestResponseText_MultipleParts(t *testing.T) {
	resp := &Response{Candidates: []Candidate{{
		Content: &Content{Parts: []Part{{Text: "a"}, {Text: "b"}}},
	}}}
	assert.Equal(t, "ab", resp.Text())
}

func TestResponseFinishReason(t *testing.T) {
	resp := &Response{Candidates: []Candidate{{FinishReason: "SAFETY"}}}
	assert.Equal(t, "SAFETY", resp.FinishReason())

	resp = &Response{Candidates: []Candidate{{FinishReason: "STOP"}}}
	assert.Empty(t, resp.FinishReason())

	resp = &Response{PromptFeedback: &PromptFeedback{BlockReason: "BLOCKLIST"}}
	assert.Equal(t, "BLOCKLIST", resp.FinishReason())
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "abc", truncateStr("abc", 5))
	assert.Equal(t, "ab...", truncateStr("abcdef", 2))
}
