package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/razorpay"
)

type config struct {
	TargetURL     string        `env:"MOCK_TARGET_URL" envDefault:"http://localhost:3000/webhook/razorpay"`
	WebhookSecret string        `env:"RAZORPAY_WEBHOOK_SECRET,required,notEmpty"`
	UserID        string        `env:"MOCK_USER_ID" envDefault:"user_1"`
	PaymentID     string        `env:"MOCK_PAYMENT_ID"`
	AmountMinor   int64         `env:"MOCK_AMOUNT" envDefault:"50000"`
	Currency      string        `env:"MOCK_CURRENCY" envDefault:"INR"`
	Timeout       time.Duration `env:"MOCK_TIMEOUT" envDefault:"10s"`
	TamperSig     bool          `env:"MOCK_TAMPER_SIGNATURE"`
}

func main() {
	logging.Init("mock-gateway", "info", os.Getenv("APP_ENV"))

	cfg, err := env.ParseAs[config]()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.PaymentID == "" {
		cfg.PaymentID = "pay_" + uuid.NewString()[:14]
	}

	status, body, err := send(cfg)
	if err != nil {
		slog.Error("webhook delivery failed", "error", err)
		os.Exit(1)
	}
	slog.Info("webhook delivered", "status", status, "response", body, "payment_id", cfg.PaymentID, "user_id", cfg.UserID)
	if status != http.StatusOK {
		os.Exit(1)
	}
}

func capturedEvent(cfg config) map[string]any {
	return map[string]any{
		"entity":     "event",
		"account_id": "acc_mock",
		"event":      razorpay.EventPaymentCaptured,
		"contains":   []string{"payment"},
		"created_at": time.Now().Unix(),
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       cfg.PaymentID,
					"entity":   "payment",
					"amount":   cfg.AmountMinor,
					"currency": cfg.Currency,
					"status":   "captured",
					"method":   "upi",
					"notes":    map[string]string{"user_id": cfg.UserID},
				},
			},
		},
	}
}

func send(cfg config) (int, string, error) {
	payload, err := json.Marshal(capturedEvent(cfg))
	if err != nil {
		return 0, "", fmt.Errorf("marshal event: %w", err)
	}

	signature := razorpay.Sign(payload, cfg.WebhookSecret)
	if cfg.TamperSig {
		signature = razorpay.Sign(payload, cfg.WebhookSecret+"x")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TargetURL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(razorpay.SignatureHeader, signature)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, string(bytes.TrimSpace(respBody)), nil
}
