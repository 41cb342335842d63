package entity

import "time"

// IntegrationType classifies an exchange with an external system.
type IntegrationType string

const (
	IntegrationCSVExport      IntegrationType = "csv_export"
	IntegrationAPISync        IntegrationType = "api_sync"
	IntegrationWebhook        IntegrationType = "webhook"
	IntegrationExternalSystem IntegrationType = "external_system"
)

// IntegrationResult is the outcome of an integration exchange.
type IntegrationResult string

const (
	IntegrationSuccess IntegrationResult = "success"
	IntegrationFailure IntegrationResult = "failure"
	IntegrationPending IntegrationResult = "pending"
)

// IntegrationLog records one exchange with an external system for a company,
// optionally tied to an order. Written fire-and-forget; never blocks or fails
// the flow it describes.
type IntegrationLog struct {
	ID              string
	CompanyID       string
	OrderID         *string
	IntegrationType IntegrationType
	Result          IntegrationResult
	Payload         map[string]any
	ErrorMessage    string
	CreatedAt       time.Time
}
