package strategy

import "context"

// Payment states mirrored from the gateway.
const (
	StatusPending   = "pending"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// STKPushRequest is the internal shape of a push initiation. The phone
// number must already be in canonical 254... form.
type STKPushRequest struct {
	PhoneNumber      string
	Amount           int64 // whole KES
	AccountReference string
	TransactionDesc  string
	CallbackURL      string
}

// STKPushResponse is the synchronous initiation result. Business-level
// rejections come back as Success=false with ErrorMessage set; the
// gateway never makes callers handle them as errors.
type STKPushResponse struct {
	Success             bool   `json:"success"`
	CheckoutRequestID   string `json:"checkoutRequestId,omitempty"`
	ResponseCode        string `json:"responseCode,omitempty"`
	ResponseDescription string `json:"responseDescription,omitempty"`
	CustomerMessage     string `json:"customerMessage,omitempty"`
	ErrorMessage        string `json:"errorMessage,omitempty"`
}

// PaymentStatus is the result of a status poll.
type PaymentStatus struct {
	Success            bool    `json:"success"`
	Status             string  `json:"status"`
	TransactionID      string  `json:"transactionId,omitempty"`
	MpesaReceiptNumber string  `json:"mpesaReceiptNumber,omitempty"`
	Amount             float64 `json:"amount,omitempty"`
	PhoneNumber        string  `json:"phoneNumber,omitempty"`
	ErrorMessage       string  `json:"errorMessage,omitempty"`
}

// Gateway abstracts the mobile-money provider. The live Daraja client
// and the simulated gateway both implement it; the implementation is
// chosen once at start-up from configuration.
//
// Implementations only talk to the network. They never touch order
// records: the asynchronous callback is the single writer of payment
// outcomes, so a status poll racing a callback cannot clobber it.
type Gateway interface {
	// InitiateSTKPush asks the provider to prompt the customer's phone.
	InitiateSTKPush(ctx context.Context, req STKPushRequest) STKPushResponse

	// CheckStatus polls the outcome of a previously initiated push.
	CheckStatus(ctx context.Context, checkoutRequestID string) PaymentStatus
}
