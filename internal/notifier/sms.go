package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/notice-management/internal"
)

// GatewaySMSSender posts to a carrier HTTP gateway. With no gateway
// configured it degrades to a skip, so environments without an SMS account
// still work end to end.
type GatewaySMSSender struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewGatewaySMSSender(cfg internal.SMSConfig, logger *slog.Logger) *GatewaySMSSender {
	return &GatewaySMSSender{
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (s *GatewaySMSSender) SendSMS(ctx context.Context, msg SMSMessage) Result {
	if len(msg.Numbers) == 0 {
		return Skipped("no numbers")
	}
	if s.gatewayURL == "" {
		return Skipped("gateway not configured")
	}

	payload := map[string]interface{}{
		"text":    msg.Text,
		"numbers": msg.Numbers,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Failed(fmt.Sprintf("marshal sms payload: %v", err))
	}

	reqCtx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, s.gatewayURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Failed(fmt.Sprintf("create sms request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("sms gateway request failed", "numbers", len(msg.Numbers), "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("sms gateway rejected request", "status", resp.StatusCode)
		return Failed(fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}

	s.logger.Info("sms sent", "numbers", len(msg.Numbers))
	return SentWithResponse(string(body))
}
