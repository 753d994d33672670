package bridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
)

// MockClient implements Client with synthetic success payloads and no
// network calls. It backs the documented "test-" API key demo mode.
type MockClient struct {
	logger logger.Logger
}

func NewMockClient(log logger.Logger) *MockClient {
	return &MockClient{
		logger: log.WithFields(map[string]interface{}{"component": "bridge", "mode": "mock"}),
	}
}

func (m *MockClient) SubmitApplication(ctx context.Context, app Application) (*SubmissionResult, error) {
	customerID := "cus_mock_" + uuid.NewString()
	m.logger.Info("mock submission accepted", map[string]interface{}{
		"customerId": customerID,
		"business":   app.LegalBusinessName,
	})
	return &SubmissionResult{
		Success:    true,
		CustomerID: customerID,
		KYCStatus:  KYCStatusPending,
		Message:    "Application submitted for review",
	}, nil
}

func (m *MockClient) GetKYCStatus(ctx context.Context, customerID string) (KYCStatus, error) {
	return KYCStatusPending, nil
}
