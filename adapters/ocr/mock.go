package ocr

import (
	"context"

	"qsolve/ports"
)

var _ ports.Recognizer = (*MockRecognizer)(nil)

// MockRecognizer is a Recognizer stub for testing
type MockRecognizer struct {
	Text  string // Set this for testing
	Error error  // Set this to simulate errors
	Calls int    // Incremented on every Recognize call
}

func (m *MockRecognizer) Recognize(ctx context.Context, img []byte) (string, error) {
	m.Calls++
	if m.Error != nil {
		return "", m.Error
	}
	return m.Text, nil
}
