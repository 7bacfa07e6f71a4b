package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-server/internal/models"
)

func testUser() *models.User {
	return &models.User{
		Name:          "Alice",
		SkillsOffered: []string{"Guitar", "Photography"},
		SkillsWanted:  []string{"Spanish"},
		Availability:  []string{"weekends"},
	}
}

func newTestClient(url string) *Client {
	c := NewClient("test-key")
	c.BaseURL = url
	return c
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testUser(), "How do I request a swap?")

	assert.Contains(t, prompt, "Name: Alice")
	assert.Contains(t, prompt, "Skills Offered: Guitar, Photography")
	assert.Contains(t, prompt, "Skills Wanted: Spanish")
	assert.Contains(t, prompt, "Availability: weekends")
	assert.Contains(t, prompt, `"How do I request a swap?"`)
	assert.Contains(t, prompt, "Skill Swap platform")
}

func TestBuildPromptEmptyProfile(t *testing.T) {
	prompt := BuildPrompt(&models.User{}, "hi")

	assert.Contains(t, prompt, "Name: Anonymous")
	assert.Contains(t, prompt, "Skills Offered: None")
	assert.Contains(t, prompt, "Skills Wanted: None")
	assert.Contains(t, prompt, "Availability: Not provided")
}

func TestAskReturnsFirstCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Skill Swap platform")

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Open a profile and click Request Swap."}}}},
				{"content": map[string]any{"parts": []map[string]string{{"text": "second candidate ignored"}}}},
			},
		})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Ask(context.Background(), testUser(), "How do I request a swap?")
	require.NoError(t, err)
	assert.Equal(t, "Open a profile and click Request Swap.", reply)
}

func TestAskMalformedResponseFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"no candidates", `{"candidates":[]}`},
		{"empty parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"empty text", `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply, err := newTestClient(srv.URL).Ask(context.Background(), testUser(), "hi")
			require.NoError(t, err)
			assert.Equal(t, FallbackReply, reply)
		})
	}
}

func TestAskUpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Ask(context.Background(), testUser(), "hi")
	assert.Error(t, err)
}

func TestAskTransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Ask(context.Background(), testUser(), "hi")
	assert.Error(t, err)
}
