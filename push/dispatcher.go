package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultGatewayURL is the Expo push endpoint used when none is configured
	DefaultGatewayURL = "https://exp.host/--/api/v2/push/send"

	maxAttempts = 5
	baseBackoff = 1 * time.Second
	maxBackoff  = 8 * time.Second
)

// Config holds the dispatcher settings. Passed explicitly to NewDispatcher so
// tests can point at a fake gateway with fake credentials.
type Config struct {
	GatewayURL string
	// AccessToken is the optional Expo bearer credential. When empty, requests go
	// out unauthenticated; that is almost always a misconfiguration and is logged
	// as a warning at startup.
	AccessToken string
	HTTPClient  *http.Client
}

// Dispatcher delivers one message to many device tokens through the push gateway,
// retrying transient failures with exponential backoff. It is stateless across
// calls and safe for concurrent use.
type Dispatcher struct {
	url         string
	accessToken string
	client      *http.Client

	// sleep is swapped out in tests to capture backoff delays
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDispatcher returns a dispatcher for the given config, filling in defaults
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DefaultGatewayURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.AccessToken == "" {
		zap.S().Warn("no push gateway access token configured, requests will be sent unauthenticated")
	}
	return &Dispatcher{
		url:         cfg.GatewayURL,
		accessToken: cfg.AccessToken,
		client:      cfg.HTTPClient,
		sleep:       sleepContext,
	}
}

// gatewayRequest is the wire format of one batched send. The gateway fans the
// single request out to every token in To.
type gatewayRequest struct {
	To       []string               `json:"to"`
	Title    string                 `json:"title"`
	Body     string                 `json:"body"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Sound    string                 `json:"sound,omitempty"`
	Priority string                 `json:"priority,omitempty"`
}

type gatewayResponse struct {
	Data json.RawMessage `json:"data"`
}

// Dispatch sends msg to the given tokens in one batched gateway call, retrying on
// 429/5xx/network errors up to 5 total attempts with 1s/2s/4s/8s backoff. Any other
// non-2xx status is terminal. It always returns a summary and never panics into the
// caller; ctx bounds total latency across the whole retry chain.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string, msg Message) Summary {
	if len(tokens) == 0 {
		// an empty audience must not look like a successful send
		return Summary{Success: false, Message: "no recipients"}
	}
	if msg.Title == "" || msg.Body == "" {
		return Summary{Success: false, Message: "notification title and body are required", TotalAttempted: len(tokens)}
	}

	data := msg.Data
	if msg.DeepLink != "" {
		merged := make(map[string]interface{}, len(msg.Data)+1)
		for k, v := range msg.Data {
			merged[k] = v
		}
		merged["deep_link"] = msg.DeepLink
		data = merged
	}

	payload, err := json.Marshal(gatewayRequest{
		To:       tokens,
		Title:    msg.Title,
		Body:     msg.Body,
		Data:     data,
		Sound:    "default",
		Priority: "high",
	})
	if err != nil {
		return Summary{Success: false, Message: fmt.Sprintf("failed to marshal push request: %v", err), TotalAttempted: len(tokens)}
	}

	var lastErr string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		summary, retryable, errDetail := d.send(ctx, payload, tokens)
		if errDetail == "" {
			return summary
		}
		lastErr = errDetail
		if !retryable {
			zap.S().Errorw("push gateway rejected request",
				"attempt", attempt,
				"error", errDetail,
			)
			return Summary{Success: false, Message: "push gateway rejected the request: " + errDetail, TotalAttempted: len(tokens)}
		}

		zap.S().Warnw("transient push gateway failure",
			"attempt", attempt,
			"error", errDetail,
		)
		if attempt == maxAttempts {
			break
		}
		if err := d.sleep(ctx, backoffFor(attempt)); err != nil {
			return Summary{Success: false, Message: "push dispatch canceled: " + err.Error(), TotalAttempted: len(tokens)}
		}
	}

	return Summary{
		Success:        false,
		Message:        fmt.Sprintf("push gateway unavailable after %d attempts: %s", maxAttempts, lastErr),
		TotalAttempted: len(tokens),
	}
}

// send performs a single gateway call. A non-empty errDetail with retryable=true
// means the caller may back off and try again.
func (d *Dispatcher) send(ctx context.Context, payload []byte, tokens []string) (summary Summary, retryable bool, errDetail string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return Summary{}, false, fmt.Sprintf("failed to create push request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if d.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.accessToken)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Summary{}, true, fmt.Sprintf("network error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return d.interpret(body, tokens), false, ""
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Summary{}, true, fmt.Sprintf("gateway returned status %d", resp.StatusCode)
	default:
		return Summary{}, false, fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}
}

// interpret partitions the gateway's per-token receipts into a summary. A 2xx
// response counts as an overall success even when individual receipts report
// errors; tokensSent and totalAttempted are both surfaced so the call site can
// apply a stricter policy.
func (d *Dispatcher) interpret(body []byte, tokens []string) Summary {
	receipts, err := parseReceipts(body)
	if err != nil {
		zap.S().Warnw("could not parse push gateway response", "error", err)
		return Summary{
			Success:        true,
			Message:        "delivered, but the gateway response could not be parsed",
			TotalAttempted: len(tokens),
		}
	}

	// the gateway reports receipts in token order
	if len(receipts) == len(tokens) {
		for i := range receipts {
			receipts[i].Token = tokens[i]
		}
	}

	sent := 0
	for _, r := range receipts {
		if r.Status == ReceiptStatusOK {
			sent++
		}
	}

	zap.S().Infow("push notification dispatched",
		"tokensSent", sent,
		"totalAttempted", len(tokens),
	)
	return Summary{
		Success:        true,
		Message:        fmt.Sprintf("delivered to %d of %d devices", sent, len(tokens)),
		TokensSent:     sent,
		TotalAttempted: len(tokens),
		Receipts:       receipts,
	}
}

// parseReceipts accepts both shapes the gateway produces: a receipt array for a
// token-array send, or a single receipt object for a single-token send.
func parseReceipts(body []byte) ([]Receipt, error) {
	var wrapper gatewayResponse
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}

	var many []Receipt
	if err := json.Unmarshal(wrapper.Data, &many); err == nil {
		return many, nil
	}

	var one Receipt
	if err := json.Unmarshal(wrapper.Data, &one); err != nil {
		return nil, err
	}
	return []Receipt{one}, nil
}

// backoffFor returns the delay before the attempt following attempt n,
// doubling from 1s and capped at 8s.
func backoffFor(attempt int) time.Duration {
	d := baseBackoff << (attempt - 1)
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
