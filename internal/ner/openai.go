package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ppiankov/edrbo/internal/model"
)

// OpenAI scores founder records through any OpenAI-compatible chat
// completions endpoint (including Ollama via BaseURL). Temperature is
// pinned to zero: identical tokens and model version must yield the
// identical answer.
type OpenAI struct {
	client *openai.Client
	cfg    model.ModelConfig
}

// NewOpenAI creates the remote model client.
func NewOpenAI(cfg model.ModelConfig) (*OpenAI, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, eris.Wrap(ErrUnavailable, "openai: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPProxy != "" || cfg.HTTPSProxy != "" {
		clientConfig.HTTPClient = &http.Client{
			Transport: &http.Transport{Proxy: proxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy)},
		}
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (m *OpenAI) Name() string { return "openai" }

// Version identifies the remote model for cache keys.
func (m *OpenAI) Version() string { return "openai:" + m.modelName() }

// IsAvailable checks the endpoint answers at all. Called once at startup;
// a dead endpoint fails the run before any record is processed.
func (m *OpenAI) IsAvailable(ctx context.Context) bool {
	_, err := m.client.ListModels(ctx)
	return err == nil
}

// Classify asks the model to label token ranges and decodes its JSON
// answer, repairing it first when the model returns slightly broken JSON.
func (m *OpenAI) Classify(ctx context.Context, toks []model.Token) ([]EntitySpan, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.modelName(),
		Temperature: 0,
		MaxTokens:   512,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(toks)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("openai: empty response")
	}

	spans, err := decodeSpans(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return clampSpans(spans, len(toks)), nil
}

func (m *OpenAI) modelName() string {
	if m.cfg.Model != "" {
		return m.cfg.Model
	}
	return openai.GPT4oMini
}

const systemPrompt = `You label tokenized founder records from the Ukrainian company registry.
Reply with a JSON array only, no prose. Each element:
{"start": <int>, "end": <int>, "label": "name"|"country"|"address"|"none", "score": <0..1>}
start/end are token indices, end exclusive. Use "none" with start=0, end=0
when the record names no beneficial owner. Never invent tokens.`

func buildPrompt(toks []model.Token) string {
	var b strings.Builder
	b.WriteString("Tokens:\n")
	for i, t := range toks {
		fmt.Fprintf(&b, "%d\t%s\n", i, t.Norm)
	}
	return b.String()
}

// decodeSpans parses the model answer, falling back to jsonrepair when
// plain decoding fails.
func decodeSpans(content string) ([]EntitySpan, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var spans []EntitySpan
	if err := json.Unmarshal([]byte(content), &spans); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return nil, eris.Wrapf(err, "openai: undecodable answer (repair also failed: %v)", repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &spans); err != nil {
			return nil, eris.Wrap(err, "openai: undecodable answer after repair")
		}
	}
	return spans, nil
}

// clampSpans drops spans with out-of-range indices instead of failing the
// record; a partially usable answer is still an answer.
func clampSpans(spans []EntitySpan, n int) []EntitySpan {
	out := spans[:0]
	for _, s := range spans {
		if s.Label == LabelNone {
			out = append(out, s)
			continue
		}
		if s.Start < 0 || s.End > n || s.End <= s.Start {
			continue
		}
		out = append(out, s)
	}
	return out
}

// proxyFunc builds a proxy selector from explicit URLs, falling back to
// the environment.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
