package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const (
	maxItems       = 5
	maxTitleLen    = 100
	maxURLLen      = 500
	maxDescLen     = 200
	maxIconLen     = 20
	temperature    = 0.7
	maxReplyTokens = 1000
)

const systemPrompt = `You help creators fill their link-in-bio page with links that get clicked.
Suggest 5 links that fit the user's description.

Reply with a JSON array only, in this shape:
[{"title": "Join my newsletter", "url": "https://example.com/newsletter", "description": "Weekly tips", "icon": "mail"}]

Icons: globe, youtube, instagram, twitter, linkedin, github, mail, phone, shopping, book, music, camera, heart.
Use short action titles, plausible URLs (placeholder domains are fine), and a mix of social, content, product and contact links.`

var ErrMalformedReply = errors.New("completion reply has no JSON array")

// OpenAISuggester asks an OpenAI-compatible chat completion API for link drafts.
type OpenAISuggester struct {
	client *openai.Client
	model  string
}

// NewOpenAISuggester talks to baseURL when set, otherwise the public OpenAI API.
func NewOpenAISuggester(apiKey, baseURL, model string) *OpenAISuggester {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAISuggester{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAISuggester) SuggestLinks(ctx context.Context, prompt, profileContext string) ([]domain.LinkInput, error) {
	user := prompt
	if profileContext != "" {
		user = fmt.Sprintf("Context: %s\n\nRequest: %s", profileContext, prompt)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("empty completion reply")
	}

	return ParseSuggestions(resp.Choices[0].Message.Content)
}

// ParseSuggestions pulls the JSON array out of a model reply that may carry
// prose or code fences around it.
func ParseSuggestions(reply string) ([]domain.LinkInput, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, ErrMalformedReply
	}
	raw := reply[start : end+1]
	if !gjson.Valid(raw) {
		return nil, ErrMalformedReply
	}

	out := make([]domain.LinkInput, 0, maxItems)
	gjson.Parse(raw).ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		icon := item.Get("icon").String()
		if icon == "" {
			icon = string(domain.IconGlobe)
		}
		in := domain.LinkInput{
			Title:       clip(item.Get("title").String(), maxTitleLen),
			URL:         clip(item.Get("url").String(), maxURLLen),
			Description: clip(item.Get("description").String(), maxDescLen),
			Icon:        clip(icon, maxIconLen),
		}
		if in.Title == "" || in.URL == "" {
			return true
		}
		out = append(out, in)
		return len(out) < maxItems
	})
	return out, nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var _ ports.LinkSuggester = (*OpenAISuggester)(nil)
