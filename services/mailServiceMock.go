package services

import (
	"sync"
	"time"
)

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer records sent mail for tests. WaitForSends lets tests observe
// notifications dispatched on separate goroutines without sleeping blindly.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: html})
	return nil
}

func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}

// WaitForSends blocks until at least n mails have been recorded or the
// timeout elapses, and reports whether the count was reached.
func (m *MockMailer) WaitForSends(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		count := len(m.sent)
		m.mu.Unlock()
		if count >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
