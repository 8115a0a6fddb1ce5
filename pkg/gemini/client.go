package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mckart-backend/model"
)

// maxOutputTokens caps the length of a generated reply.
const maxOutputTokens = 1000

type Client struct {
	model *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	m := client.GenerativeModel(modelName)
	m.SetMaxOutputTokens(maxOutputTokens)
	return &Client{model: m}, nil
}

// Converse replays the client-owned history and sends the new message
// as a single stateless turn. Local turn naming maps onto Gemini's
// two-role naming: "user" stays "user", everything else is "model".
func (c *Client) Converse(ctx context.Context, message string, history []model.Turn) (string, error) {
	chat := c.model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, t := range history {
		role := "model"
		if t.Sender == model.TurnUser {
			role = "user"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(txt), nil
}
