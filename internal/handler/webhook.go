package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/razorpay"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/tracing"
)

const maxWebhookBody = 1 << 20

type recordUpdater interface {
	MarkPaymentSuccess(ctx context.Context, userID, paymentID string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.PaymentSuccessEvent) error
}

type WebhookHandler struct {
	records   recordUpdater
	publisher eventPublisher
	secret    string
	now       func() time.Time
}

func NewWebhookHandler(records recordUpdater, publisher eventPublisher, secret string) *WebhookHandler {
	return &WebhookHandler{
		records:   records,
		publisher: publisher,
		secret:    secret,
		now:       time.Now,
	}
}

// ReceiveRazorpayWebhook verifies the gateway signature over the raw body,
// records the payment against the user and relays it to the queue.
func (h *WebhookHandler) ReceiveRazorpayWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer().Start(tracing.ExtractHTTP(r.Context(), r.Header), "razorpay.webhook")
	defer span.End()
	log := logging.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("webhook body exceeds limit", "limit_bytes", tooLarge.Limit)
			span.SetStatus(codes.Error, "body too large")
			RespondAppError(w, ErrPayloadTooLarge)
			return
		}
		log.Error("failed to read webhook body", "error", err)
		RespondAppError(w, ErrInternalError)
		return
	}

	if err := razorpay.Verify(body, r.Header.Get(razorpay.SignatureHeader), h.secret); err != nil {
		log.Warn("invalid razorpay webhook signature")
		span.SetStatus(codes.Error, "invalid signature")
		RespondDomainError(w, err)
		return
	}

	webhook, err := razorpay.ParseEvent(body)
	if err != nil {
		log.Warn("failed to parse webhook payload", "error", err)
		RespondDomainError(w, err)
		return
	}

	event, err := razorpay.Extract(webhook, h.now())
	if err != nil {
		log.Warn("webhook payload missing payment or user id", "event_type", webhook.Event)
		RespondDomainError(w, err)
		return
	}

	span.SetAttributes(
		attribute.String("razorpay.event", event.EventType),
		attribute.String("razorpay.payment_id", event.PaymentID),
	)
	ctx = logging.With(ctx, "payment_id", event.PaymentID, "user_id", event.UserID)
	log = logging.FromContext(ctx)
	log.Info("received razorpay webhook", "event_type", event.EventType)

	if err := h.records.MarkPaymentSuccess(ctx, event.UserID, event.PaymentID); err != nil {
		log.Error("failed to update user record", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "record update failed")
		RespondDomainError(w, err)
		return
	}

	if err := h.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish payment event", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		RespondDomainError(w, err)
		return
	}

	RespondStatus(w, http.StatusOK, "Webhook handled successfully")
}
