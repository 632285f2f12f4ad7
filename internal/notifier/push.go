package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/notice-management/internal"
)

// FCMPushSender talks to the FCM legacy HTTP API. Without a server key or
// device tokens it skips rather than fails, matching the other channels.
type FCMPushSender struct {
	serverKey   string
	endpointURL string
	sendTimeout time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewFCMPushSender(cfg internal.PushConfig, logger *slog.Logger) *FCMPushSender {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FCMPushSender{
		serverKey:   cfg.ServerKey,
		endpointURL: cfg.EndpointURL,
		sendTimeout: timeout,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

func (s *FCMPushSender) SendPush(ctx context.Context, msg PushMessage) Result {
	if s.serverKey == "" {
		return Skipped("missing server key")
	}
	if len(msg.Tokens) == 0 {
		return Skipped("no device tokens")
	}

	payload := map[string]interface{}{
		"registration_ids": msg.Tokens,
		"notification": map[string]string{
			"title": msg.Title,
			"body":  msg.Body,
		},
	}
	if len(msg.Data) > 0 {
		payload["data"] = msg.Data
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Failed(fmt.Sprintf("marshal push payload: %v", err))
	}

	reqCtx, cancel := internal.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, s.endpointURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Failed(fmt.Sprintf("create push request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("push send failed", "tokens", len(msg.Tokens), "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("push rejected by FCM", "status", resp.StatusCode)
		return Failed(fmt.Sprintf("fcm returned status %d", resp.StatusCode))
	}

	s.logger.Info("push sent", "tokens", len(msg.Tokens))
	return SentWithResponse(string(body))
}
