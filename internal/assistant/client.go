package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skillswap/skillswap-server/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-pro:generateContent"

// FallbackReply is returned when the upstream answer is empty or malformed.
const FallbackReply = "I can only help with Skill Swap-related questions."

// Client calls the Gemini generateContent API. Each call is independent;
// no conversation state is kept server-side.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an assistant client with a sane request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// BuildPrompt assembles the fixed instruction prompt that constrains the
// assistant to platform questions, seeded with the caller's profile.
func BuildPrompt(user *models.User, message string) string {
	name := user.Name
	if name == "" {
		name = "Anonymous"
	}
	offered := strings.Join(user.SkillsOffered, ", ")
	if offered == "" {
		offered = "None"
	}
	wanted := strings.Join(user.SkillsWanted, ", ")
	if wanted == "" {
		wanted = "None"
	}
	availability := strings.Join(user.Availability, ", ")
	if availability == "" {
		availability = "Not provided"
	}

	return fmt.Sprintf(`You are a helpful assistant for the Skill Swap platform.

User Info:
- Name: %s
- Skills Offered: %s
- Skills Wanted: %s
- Availability: %s

Your job:
- Help users navigate the platform
- Guide them on: adding skills, requesting swaps, accepting/rejecting swaps, leaving feedback, privacy settings, etc.
- If they ask anything unrelated to the platform, say: "I can only help with Skill Swap-related questions."

Only reply in under 60 words, no markdown, no formatting.

User's question:
"%s"
`, name, offered, wanted, availability, message)
}

// Ask forwards the user's question to the generative API and returns the
// first candidate's text. A malformed or empty answer degrades to
// FallbackReply; transport and non-2xx failures are returned as errors.
func (c *Client) Ask(ctx context.Context, user *models.User, message string) (string, error) {
	prompt := BuildPrompt(user, message)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant request: %v", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.BaseURL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("assistant request failed with status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return FallbackReply, nil
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return FallbackReply, nil
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}
