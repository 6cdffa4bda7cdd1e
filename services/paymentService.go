package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const paystackBaseURL = "https://api.paystack.co"

// PaymentVerification is the provider's verdict for one payment reference.
type PaymentVerification struct {
	Settled bool
	Amount  float64
}

// PaymentProvider opens a transaction for an amount under a reference and
// later reports whether that transaction settled. Paystack in production,
// a mock in tests.
type PaymentProvider interface {
	Initialize(amount float64, reference, email string) (string, error)
	Verify(reference string) (*PaymentVerification, error)
}

var Payment PaymentProvider = &PaystackProvider{}

// SetPaymentProvider swaps the active provider. Used by tests.
func SetPaymentProvider(p PaymentProvider) {
	Payment = p
}

type PaystackProvider struct{}

func paystackSecretKey() (string, error) {
	key := os.Getenv("PAYSTACK_SECRET_KEY")
	if key == "" {
		return "", fmt.Errorf("paystack secret key is not set")
	}
	return key, nil
}

// Initialize opens a Paystack transaction and returns the authorization URL
// the buyer must be redirected to. Amounts are sent in subunits.
func (p *PaystackProvider) Initialize(amount float64, reference, email string) (string, error) {
	key, err := paystackSecretKey()
	if err != nil {
		return "", err
	}

	requestBody := map[string]any{
		"email":     email,
		"amount":    int64(math.Round(amount * 100)),
		"reference": reference,
	}
	if callbackURL := os.Getenv("FRONTEND_URL"); callbackURL != "" {
		requestBody["callback_url"] = callbackURL + "/payment/callback"
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + key,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(requestBody).
		Post(paystackBaseURL + "/transaction/initialize")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("paystack initialize failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response struct {
		Status bool `json:"status"`
		Data   struct {
			AuthorizationUrl string `json:"authorization_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse initialize response: %w", err)
	}

	if !response.Status || response.Data.AuthorizationUrl == "" {
		return "", fmt.Errorf("paystack rejected transaction for reference %s", reference)
	}

	return response.Data.AuthorizationUrl, nil
}

// Verify queries the current state of a transaction. Paystack is the source
// of truth here, so callers re-derive order state from this verdict on every
// call rather than trusting local flags.
func (p *PaystackProvider) Verify(reference string) (*PaymentVerification, error) {
	key, err := paystackSecretKey()
	if err != nil {
		return nil, err
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeader("Authorization", "Bearer "+key).
		SetHeader("Accept", "application/json").
		Get(paystackBaseURL + "/transaction/verify/" + reference)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("paystack verify failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response struct {
		Status bool `json:"status"`
		Data   struct {
			Status string `json:"status"`
			Amount int64  `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return nil, fmt.Errorf("failed to parse verify response: %w", err)
	}

	if !response.Status {
		return nil, fmt.Errorf("paystack could not resolve reference %s", reference)
	}

	return &PaymentVerification{
		Settled: response.Data.Status == "success",
		Amount:  float64(response.Data.Amount) / 100,
	}, nil
}
