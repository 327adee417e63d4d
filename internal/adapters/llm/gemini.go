package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/emofy/emofy-api/internal/domain"
)

// Config selects the Gemini backend. APIKey targets the Gemini API
// directly; Project/Location target Vertex AI.
type Config struct {
	Model     string
	APIKey    string
	Project   string
	Location  string
	UseVertex bool
}

// GeminiClient implements domain.ModelClient on google.golang.org/genai.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	clientCfg := &genai.ClientConfig{}
	if cfg.UseVertex {
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("project and location are required for Vertex AI")
		}
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
		clientCfg.Backend = genai.BackendVertexAI
	} else {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API key is required for the Gemini API")
		}
		clientCfg.APIKey = cfg.APIKey
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-pro"
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateReply sends the full ordered history plus an empty trailing user
// message: the last history turn IS the instruction, there is no standalone
// prompt. The model sees every turn in append order.
func (g *GeminiClient) GenerateReply(ctx context.Context, history []domain.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == domain.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	contents = append(contents, genai.NewContentFromText("", genai.RoleUser))

	// Generation config (local vars instead of genai.Ptr to avoid
	// generic issues).
	temp := float32(2.0)
	topP := float32(0.95)
	topK := float32(64)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temp,
		TopP:             &topP,
		TopK:             &topK,
		MaxOutputTokens:  outputTokens,
		ResponseMIMEType: "text/plain",
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
