package razorpay

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
)

type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// OrderClient creates gateway orders for payments that will later come back
// through the webhook.
type OrderClient struct {
	orders orderAPI
}

// NewOrderClient returns nil when no API credentials are configured.
func NewOrderClient(keyID, keySecret string) *OrderClient {
	if keyID == "" || keySecret == "" {
		return nil
	}
	return &OrderClient{orders: razorpay.NewClient(keyID, keySecret).Order}
}

func newOrderClientWithAPI(api orderAPI) *OrderClient {
	return &OrderClient{orders: api}
}

func (c *OrderClient) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if c == nil {
		return nil, fmt.Errorf("CreateOrder: %w", domain.ErrGatewayUnavailable)
	}
	log := logging.FromContext(ctx)

	data := map[string]interface{}{
		"amount":   req.AmountMinor(),
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    map[string]interface{}{noteUserID: req.UserID},
	}

	resp, err := c.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateOrder: %w", err)
	}

	order := &domain.Order{
		ID:       stringField(resp, "id"),
		Amount:   int64Field(resp, "amount"),
		Currency: stringField(resp, "currency"),
		Receipt:  stringField(resp, "receipt"),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("CreateOrder: gateway response missing order id")
	}

	log.Info("gateway order created", "order_id", order.ID, "user_id", req.UserID, "amount", order.Amount)
	return order, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func int64Field(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
