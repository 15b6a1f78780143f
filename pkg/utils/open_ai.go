package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"reout/pkg/logger"
)

// PlanTrigger is the fixed user turn sent after the compiled prompt.
const PlanTrigger = "Generate the plan."

// PlanGeneratorInterface is implemented by every text-generation backend.
type PlanGeneratorInterface interface {
	Generate(ctx context.Context, prompt string, model string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Name() string
}

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeVersionIncompatible
	outcomeFailed
)

// callOutcome is the tagged result of a current-shape call.
type callOutcome struct {
	kind outcomeKind
	text []string
	err  error
}

func ok(text ...string) callOutcome { return callOutcome{kind: outcomeOK, text: text} }

func versionIncompatible(err error) callOutcome {
	return callOutcome{kind: outcomeVersionIncompatible, err: err}
}

func failed(err error) callOutcome { return callOutcome{kind: outcomeFailed, err: err} }

// OpenAIPlanClient talks to OpenAI or an OpenAI-compatible endpoint.
// Generation uses the Responses API and falls back to chat completions when the
// endpoint does not serve that route. Model listing uses /v1/models with /v1/engines
// as the legacy route.
type OpenAIPlanClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
	sdk        *openai.Client
	models     *ModelCache
}

func NewOpenAIPlanClient(log *logger.Logger, apiKey, baseURL string, timeout time.Duration) *OpenAIPlanClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL + "/v1"
	cfg.HTTPClient = httpClient

	return &OpenAIPlanClient{
		log:        log.With("service", "OpenAIPlanClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		sdk:        openai.NewClientWithConfig(cfg),
		models:     NewModelCache(),
	}
}

func (c *OpenAIPlanClient) Name() string { return "openai" }

func (c *OpenAIPlanClient) Generate(ctx context.Context, prompt string, model string) (string, error) {
	out := c.generateCurrent(ctx, prompt, model)
	switch out.kind {
	case outcomeOK:
		return out.text[0], nil
	case outcomeVersionIncompatible:
		c.log.Info("responses route unavailable, using chat completions", "model", model, "detail", out.err.Error())
		return c.generateLegacy(ctx, prompt, model)
	default:
		return "", out.err
	}
}

// ListModels returns the model ids the key can use. The first successful
// result is kept for the life of the process.
func (c *OpenAIPlanClient) ListModels(ctx context.Context) ([]string, error) {
	return c.models.Get(ctx, c.loadModels)
}

func (c *OpenAIPlanClient) loadModels(ctx context.Context) ([]string, error) {
	out := c.listModelsCurrent(ctx)
	switch out.kind {
	case outcomeOK:
		return out.text, nil
	case outcomeVersionIncompatible:
		c.log.Info("models route unavailable, using engines", "detail", out.err.Error())
		return c.listModelsLegacy(ctx)
	default:
		return nil, out.err
	}
}

// -------------------- Responses API (current shape) --------------------

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string             `json:"model"`
	Input []responsesMessage `json:"input"`
}

type responsesResponse struct {
	OutputText string `json:"output_text,omitempty"`
	Output     []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func (r responsesResponse) text() string {
	if strings.TrimSpace(r.OutputText) != "" {
		return r.OutputText
	}
	var out strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				out.WriteString(part.Text)
			}
		}
	}
	return out.String()
}

func (c *OpenAIPlanClient) generateCurrent(ctx context.Context, prompt, model string) callOutcome {
	req := responsesRequest{
		Model: model,
		Input: []responsesMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: PlanTrigger},
		},
	}

	raw, err := c.doJSON(ctx, http.MethodPost, "/v1/responses", req)
	if err != nil {
		return classifyHTTPFailure(err)
	}

	var resp responsesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return failed(newMalformedError(c.Name(), fmt.Sprintf("decode responses payload: %v", err)))
	}
	if resp.Refusal != "" {
		return failed(newMalformedError(c.Name(), "model refused: "+resp.Refusal))
	}
	text := resp.text()
	if strings.TrimSpace(text) == "" {
		return failed(newMalformedError(c.Name(), "no output_text found in response"))
	}
	return ok(text)
}

func (c *OpenAIPlanClient) listModelsCurrent(ctx context.Context) callOutcome {
	list, err := c.sdk.ListModels(ctx)
	if err != nil {
		status, code, param, message := sdkErrorDetail(err)
		if isRouteUnsupported(status, code, param) {
			return versionIncompatible(err)
		}
		return failed(newTransportError(c.Name(), status, message, err))
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return failed(newMalformedError(c.Name(), "empty model list"))
	}
	return ok(ids...)
}

// -------------------- chat completions / engines (legacy shape) --------------------

func (c *OpenAIPlanClient) generateLegacy(ctx context.Context, prompt, model string) (string, error) {
	resp, err := c.sdk.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: PlanTrigger},
		},
	})
	if err != nil {
		status, _, _, message := sdkErrorDetail(err)
		return "", newTransportError(c.Name(), status, message, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", newMalformedError(c.Name(), "no choices in chat completion")
	}
	return resp.Choices[0].Message.Content, nil
}

type enginesResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (c *OpenAIPlanClient) listModelsLegacy(ctx context.Context) ([]string, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, "/v1/engines", nil)
	if err != nil {
		var httpErr *openAIHTTPError
		if errors.As(err, &httpErr) {
			return nil, newTransportError(c.Name(), httpErr.StatusCode, httpErr.message(), err)
		}
		return nil, newTransportError(c.Name(), 0, err.Error(), err)
	}
	var resp enginesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newMalformedError(c.Name(), fmt.Sprintf("decode engines payload: %v", err))
	}
	ids := make([]string, 0, len(resp.Data))
	for _, e := range resp.Data {
		ids = append(ids, e.ID)
	}
	if len(ids) == 0 {
		return nil, newMalformedError(c.Name(), "empty model list")
	}
	return ids, nil
}

// -------------------- transport helpers --------------------

type openAIHTTPError struct {
	StatusCode int
	Code       string
	Param      string
	Message    string
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.message())
}

func (e *openAIHTTPError) message() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(e.Body)
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
		Param   string `json:"param"`
	} `json:"error"`
}

func (c *OpenAIPlanClient) doJSON(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var parsed openAIErrorBody
		if json.Unmarshal(raw, &parsed) == nil {
			httpErr.Message = parsed.Error.Message
			if parsed.Error.Code != nil {
				httpErr.Code = fmt.Sprint(parsed.Error.Code)
			}
			httpErr.Param = parsed.Error.Param
		}
		return raw, httpErr
	}
	return raw, nil
}

func classifyHTTPFailure(err error) callOutcome {
	var httpErr *openAIHTTPError
	if errors.As(err, &httpErr) {
		if isRouteUnsupported(httpErr.StatusCode, httpErr.Code, httpErr.Param) {
			return versionIncompatible(err)
		}
		return failed(newTransportError("openai", httpErr.StatusCode, httpErr.message(), err))
	}
	return failed(newTransportError("openai", 0, err.Error(), err))
}

// isRouteUnsupported reports whether a failure means the endpoint does not serve the
// route at all, as opposed to rejecting this particular request. Only the structured
// error fields are consulted; an unknown model is flagged by code or param.
func isRouteUnsupported(status int, code, param string) bool {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
	default:
		return false
	}
	return code != "model_not_found" && param != "model"
}

func sdkErrorDetail(err error) (status int, code, param, message string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		if apiErr.Param != nil {
			param = *apiErr.Param
		}
		return apiErr.HTTPStatusCode, code, param, apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		message = reqErr.Error()
		if len(reqErr.Body) > 0 {
			message = strings.TrimSpace(string(reqErr.Body))
		}
		return reqErr.HTTPStatusCode, "", "", message
	}
	return 0, "", "", err.Error()
}
