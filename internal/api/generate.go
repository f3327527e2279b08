package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

const (
	// maxErrorBody limits how much of a failed response is kept for diagnostics
	maxErrorBody = 4096
	// maxResponseBody limits the size of a successful response
	maxResponseBody = 10 << 20
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// Generate sends prompt as a single-turn request and returns the answer text
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	output, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return output.Text, nil
}

// GenerateContent sends prompt as a single-turn request and returns the decoded output
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apierrors.ErrEmptyPrompt
	}

	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	if c.apiKey == "" {
		return nil, apierrors.ErrNoAPIKey
	}

	model := c.GetModel()
	endpoint := model.GenerateEndpoint()

	payload, err := buildPayload(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req = req.WithContext(ctx)

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, apierrors.NewNetworkErrorWithEndpoint("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	c.log.V(1).Info("generate content response",
		"model", model.Name,
		"status", resp.StatusCode,
		"elapsed", time.Since(start).String(),
	)

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := "generate content failed"
		if msg := gjson.GetBytes(errorBody, PathErrorMessage).String(); msg != "" {
			message = msg
		}
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, message, string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}

	return parseResponse(body)
}

// buildPayload creates the JSON body of a single-turn generateContent request
func buildPayload(prompt string) ([]byte, error) {
	return json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	})
}

// parseResponse decodes a generateContent response body
func parseResponse(body []byte) (*models.ModelOutput, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	if reason := parsed.Get(PathBlockReason).String(); reason != "" {
		return nil, apierrors.NewBlockedError(reason)
	}

	if parsed.Get(PathCandidateCount).Int() == 0 {
		return nil, apierrors.NewParseError("no candidates found", PathCandidates)
	}

	var text strings.Builder
	parsed.Get(PathFirstParts).ForEach(func(_, p gjson.Result) bool {
		if p.Get(PathPartThought).Bool() {
			return true
		}
		text.WriteString(p.Get(PathPartText).String())
		return true
	})

	finishReason := parsed.Get(PathFinishReason).String()

	if text.Len() == 0 {
		if blockingFinishReasons[finishReason] {
			return nil, apierrors.NewBlockedError(finishReason)
		}
		return nil, fmt.Errorf("%w (finish reason %q)", apierrors.ErrNoContent, finishReason)
	}

	return &models.ModelOutput{
		Text:         text.String(),
		FinishReason: finishReason,
		ModelVersion: parsed.Get(PathModelVersion).String(),
		PromptTokens: int(parsed.Get(PathPromptTokens).Int()),
		OutputTokens: int(parsed.Get(PathCandidateTokens).Int()),
	}, nil
}
