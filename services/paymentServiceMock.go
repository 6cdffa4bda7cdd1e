package services

import (
	"fmt"
	"sync"
)

// MockPaymentProvider is an in-memory PaymentProvider for tests.
type MockPaymentProvider struct {
	mu sync.Mutex

	InitializeErr error
	VerifyErr     error
	Settled       bool

	initialized []string
	verified    []string
	amounts     map[string]float64
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{amounts: map[string]float64{}}
}

func (m *MockPaymentProvider) Initialize(amount float64, reference, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InitializeErr != nil {
		return "", m.InitializeErr
	}
	m.initialized = append(m.initialized, reference)
	m.amounts[reference] = amount
	return fmt.Sprintf("https://checkout.example.com/%s", reference), nil
}

func (m *MockPaymentProvider) Verify(reference string) (*PaymentVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	m.verified = append(m.verified, reference)
	return &PaymentVerification{Settled: m.Settled, Amount: m.amounts[reference]}, nil
}

func (m *MockPaymentProvider) InitializedReferences() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.initialized...)
}

func (m *MockPaymentProvider) VerifyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verified)
}
