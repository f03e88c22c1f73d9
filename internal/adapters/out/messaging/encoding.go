package messaging

import (
	"encoding/json"
	"fmt"
)

// Keyed messages choose their own partition key.
type Keyed interface {
	MessageKey() string
}

type keyProbe struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	DeliveryID string `json:"deliveryId"`
}

// Encode serialises message to JSON and derives its key: MessageKey when the
// message is Keyed, otherwise the first non-empty of id, orderId and deliveryId.
// Raw payloads ([]byte, json.RawMessage) are sent unchanged.
func Encode(message any) (key string, payload []byte, err error) {
	switch m := message.(type) {
	case json.RawMessage:
		payload = m
	case []byte:
		payload = m
	default:
		payload, err = json.Marshal(message)
		if err != nil {
			return "", nil, fmt.Errorf("encode message: %w", err)
		}
	}

	if k, ok := message.(Keyed); ok {
		return k.MessageKey(), payload, nil
	}

	var probe keyProbe
	if json.Unmarshal(payload, &probe) != nil {
		return "", payload, nil
	}

	switch {
	case probe.ID != "":
		key = probe.ID
	case probe.OrderID != "":
		key = probe.OrderID
	default:
		key = probe.DeliveryID
	}
	return key, payload, nil
}
