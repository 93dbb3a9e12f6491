package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LLMService calls an OpenAI-compatible chat API for the AI writing helpers:
// post idea generation for authors and reader-facing article summaries.
// Failures here must never block the main flow; callers degrade to the page
// without AI content.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = &LLMService{
			baseURL: os.Getenv("LLM_BASE_URL"),
			token:   os.Getenv("LLM_TOKEN"),
			model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return llmService
}

// Enabled reports whether the helper is configured. The UI hides AI
// affordances entirely when it is not.
func (s *LLMService) Enabled() bool {
	return s.baseURL != "" && s.token != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *LLMService) chat(prompt string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("LLM not configured")
	}

	payload, err := json.Marshal(ChatRequest{
		Model: s.model,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// GenerateSummary produces a short reader-facing summary of a post.
func (s *LLMService) GenerateSummary(title, content string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following blog post in at most 3 sentences for a preview box. Reply with the summary only.\n\nTitle: %s\n\n%s",
		title, content)
	out, err := s.chat(prompt)
	if err != nil {
		return "", err
	}
	return "[AI Summary] " + out, nil
}

// PostIdea is one AI-generated writing prompt shown on the author dashboard.
type PostIdea struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"` // Easy / Medium / Hard
	EstimatedTime string `json:"estimatedTime"`
	Trending      bool   `json:"trending"`
}

// GeneratePostIdeas asks the model for post ideas on a topic. The model is
// told to answer with a bare JSON array; anything else fails the call.
func (s *LLMService) GeneratePostIdeas(topic string) ([]PostIdea, error) {
	prompt := fmt.Sprintf(
		"Generate 5 blog post ideas about %q. Respond with only a JSON array where each element has the keys "+
			`"title", "description", "category", "difficulty" (Easy|Medium|Hard), "estimatedTime" and "trending" (boolean).`,
		topic)

	out, err := s.chat(prompt)
	if err != nil {
		return nil, err
	}

	// Some models wrap JSON in a markdown fence.
	out = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(out, "```json"), "```"))
	out = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(out, "```"), "```"))

	var ideas []PostIdea
	if err := json.Unmarshal([]byte(out), &ideas); err != nil {
		logrus.WithError(err).Warn("LLM returned unparseable ideas payload")
		return nil, fmt.Errorf("parse ideas: %w", err)
	}
	return ideas, nil
}
