package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"recipe-master/internal/core/ai"
	"recipe-master/internal/core/ai/provider"
	"recipe-master/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	providerName   = "gemini"
)

// Client Gemini generateContent REST 客戶端
type Client struct {
	config provider.Config
	client *resty.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	ModelVersion string `json:"modelVersion"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient 創建新的 Gemini 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{config: cfg, client: client}
}

// Generate 呼叫 models/{model}:generateContent，只送出一次
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	body := c.buildRequest(req)

	common.LogDebug("Sending request to Gemini",
		zap.String("model", c.config.Model),
		zap.Int("messages", len(req.Messages)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("model", c.config.Model).
		SetBody(body).
		Post("/models/{model}:generateContent")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to send request to Gemini: %w: %v", ai.ErrServiceUnavailable, err)
	}

	if resp.IsError() {
		apiErr := &ai.APIError{Provider: providerName, StatusCode: resp.StatusCode(), Message: resp.Status()}
		var e errorResponse
		if json.Unmarshal(resp.Body(), &e) == nil && e.Error.Message != "" {
			apiErr.Status = e.Error.Status
			apiErr.Message = e.Error.Message
		}
		common.LogWarn("Gemini API returned error status",
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("status", apiErr.Status),
			zap.String("model", c.config.Model),
		)
		return nil, apiErr
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w: %v", ai.ErrServiceUnavailable, err)
	}

	text := result.text()
	if strings.TrimSpace(text) == "" {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: prompt blocked (%s)", ai.ErrEmptyResponse, result.PromptFeedback.BlockReason)
		}
		return nil, ai.ErrEmptyResponse
	}

	model := result.ModelVersion
	if model == "" {
		model = c.config.Model
	}
	return &provider.Response{
		Content: text,
		Model:   model,
		Usage: provider.Usage{
			PromptTokens:     result.UsageMetadata.PromptTokenCount,
			CompletionTokens: result.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      result.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

func (c *Client) buildRequest(req *provider.Request) *generateRequest {
	body := &generateRequest{}
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			body.SystemInstruction = &content{Parts: []part{{Text: msg.Content}}}
		case "assistant", "model":
			body.Contents = append(body.Contents, content{Role: "model", Parts: []part{{Text: msg.Content}}})
		default:
			body.Contents = append(body.Contents, content{Role: "user", Parts: []part{{Text: msg.Content}}})
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}
	if maxTokens > 0 || temperature > 0 {
		body.GenerationConfig = &generationConfig{MaxOutputTokens: maxTokens, Temperature: temperature}
	}
	return body
}

// text 串接第一個候選的所有文字片段
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

var _ provider.Provider = (*Client)(nil)
