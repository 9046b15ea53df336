package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"SectorPulse/internal/domain/models"
	domsvc "SectorPulse/internal/domain/service"
	xhttp "SectorPulse/pkg/http"
)

const requestTimeout = 30 * time.Second

// Client implements the Narrative service against a SiliconFlow-style
// chat-completions endpoint.
type Client struct {
	apiURL string
	apiKey string
	model  string
	client *xhttp.Client
}

// New creates a SiliconFlow narrative client.
func New(apiURL, apiKey, model string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: xhttp.NewClient(xhttp.WithTimeout(requestTimeout)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatChoices mirrors only the response path we extract; everything else is
// kept verbatim in the raw payload.
type chatChoices struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the scored summary to the provider and returns the narrative.
// The call either fails with a *ServiceError (precondition, transport or
// non-success status) or succeeds with possibly-empty text.
func (c *Client) Analyze(ctx context.Context, sector string, summary models.SectorSummary) (models.AnalysisResult, error) {
	if c.apiKey == "" {
		return models.AnalysisResult{}, &domsvc.ServiceError{Kind: domsvc.ErrKindUnconfigured}
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return models.AnalysisResult{}, &domsvc.ServiceError{Kind: domsvc.ErrKindTransport, Err: err}
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a market analyst focusing on A-share sectors."},
			{Role: "user", Content: fmt.Sprintf(
				"Please analyze A-share sector '%s'. Here is the aggregated data: %s. "+
					"Provide a concise technical view and potential risks.",
				sector, summaryJSON)},
		},
	}

	resp, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.apiURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: payload,
	})
	if err != nil {
		return models.AnalysisResult{}, &domsvc.ServiceError{Kind: domsvc.ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AnalysisResult{}, &domsvc.ServiceError{Kind: domsvc.ErrKindTransport, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.AnalysisResult{}, &domsvc.ServiceError{
			Kind:   domsvc.ErrKindRemote,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.AnalysisResult{}, &domsvc.ServiceError{Kind: domsvc.ErrKindTransport, Err: err}
	}

	return models.AnalysisResult{
		Sector:   sector,
		Analysis: extractContent(body),
		Raw:      raw,
	}, nil
}

// extractContent pulls choices[0].message.content. Any missing nesting level
// degrades to an empty string; a missing narrative never fails the call.
func extractContent(body []byte) string {
	var cc chatChoices
	if err := json.Unmarshal(body, &cc); err != nil {
		return ""
	}
	if len(cc.Choices) == 0 {
		return ""
	}
	return cc.Choices[0].Message.Content
}

var _ domsvc.Narrative = (*Client)(nil)
