package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const hfDefaultBase = "https://api-inference.huggingface.co/models/"

// HFOptions configures the Hugging Face client.
type HFOptions struct {
	Token       string
	Model       string
	APIURL      string // overrides the URL derived from Model
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// HuggingFace interprets through the Hugging Face Inference API
// text-generation endpoint.
type HuggingFace struct {
	opts HFOptions
	url  string
	http *http.Client
}

// NewHuggingFace builds a client; httpClient may be nil.
func NewHuggingFace(opts HFOptions, httpClient *http.Client) *HuggingFace {
	url := strings.TrimSpace(opts.APIURL)
	if url == "" {
		url = hfDefaultBase + opts.Model
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HuggingFace{opts: opts, url: url, http: httpClient}
}

func (h *HuggingFace) Name() string { return ProviderHF }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
	DoSample       bool    `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// HTTPStatusError is returned for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

func (h *HuggingFace) Interpret(ctx context.Context, req Request) (string, error) {
	system, user := buildPrompt(req)
	payload, err := json.Marshal(hfRequest{
		Inputs: system + "\n\n" + user,
		Parameters: hfParameters{
			MaxNewTokens: h.opts.MaxTokens,
			Temperature:  h.opts.Temperature,
			TopP:         h.opts.TopP,
			DoSample:     true,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", wrap(ProviderHF, err, false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return "", wrap(ProviderHF, err, false)
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.opts.Token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.http.Do(httpReq)
	if err != nil {
		return "", wrap(ProviderHF, err, transient(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", wrap(ProviderHF, err, transient(err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", wrap(ProviderHF, &HTTPStatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}, retryableStatus(resp.StatusCode))
	}

	text := strings.TrimSpace(extractHFText(body))
	if text == "" {
		return "", wrap(ProviderHF, ErrEmptyResponse, false)
	}
	return text, nil
}

// extractHFText accepts [{"generated_text": ...}], or an object carrying
// generated_text, text or content. Anything else is returned as compact
// JSON cut to 500 bytes.
func extractHFText(body []byte) string {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) > 0 {
			if s, ok := list[0]["generated_text"].(string); ok {
				return s
			}
		}
	} else {
		var obj map[string]any
		if err := json.Unmarshal(body, &obj); err == nil {
			for _, k := range []string{"generated_text", "text", "content"} {
				if s, ok := obj[k].(string); ok {
					return s
				}
			}
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return truncate(string(body), 500)
	}
	return truncate(compact.String(), 500)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
