package strategy

import "strconv"

// Daraja delivers STK push results as a nested JSON envelope. These
// types model the wire format exactly; names follow the provider.

// CallbackEnvelope is the top-level webhook payload.
type CallbackEnvelope struct {
	Body CallbackBody `json:"Body"`
}

type CallbackBody struct {
	STKCallback STKCallback `json:"stkCallback"`
}

// STKCallback carries the result of one push. ResultCode 0 means the
// customer authorised the payment; any other code is a failure or
// cancellation described by ResultDesc.
type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

// CallbackMetadata is the name/value list attached to successful
// results (Amount, MpesaReceiptNumber, TransactionDate, PhoneNumber).
type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// String returns the named metadata value rendered as a string, or ""
// when absent. Numeric values (the provider sends PhoneNumber as a
// number) are formatted without an exponent.
func (m *CallbackMetadata) String(name string) string {
	if m == nil {
		return ""
	}
	for _, item := range m.Item {
		if item.Name == name {
			switch v := item.Value.(type) {
			case string:
				return v
			case float64:
				return trimFloat(v)
			}
		}
	}
	return ""
}

// Float returns the named metadata value as a float64, or 0.
func (m *CallbackMetadata) Float(name string) float64 {
	if m == nil {
		return 0
	}
	for _, item := range m.Item {
		if item.Name == name {
			if v, ok := item.Value.(float64); ok {
				return v
			}
		}
	}
	return 0
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
