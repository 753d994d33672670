// Package bridge integrates with the Bridge compliance API. The integration
// uses the single all-at-once submission endpoint; status can be polled
// afterwards per customer.
package bridge

import "time"

// KYCStatus reports where a submitted customer stands in verification.
type KYCStatus string

const (
	KYCStatusPending        KYCStatus = "pending"
	KYCStatusApproved       KYCStatus = "approved"
	KYCStatusRejected       KYCStatus = "rejected"
	KYCStatusRequiresAction KYCStatus = "requires_action"
)

// Customer is the provider's customer record.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	KYCStatus KYCStatus `json:"kyc_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Application is the outbound all-at-once submission payload. Field names
// pass through from the form; missing optional fields default to "".
type Application struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"job_title"`

	LegalBusinessName   string `json:"legal_business_name"`
	DoingBusinessAs     string `json:"doing_business_as"`
	BusinessType        string `json:"business_type"`
	RegistrationNumber  string `json:"registration_number"`
	IncorporationDate   string `json:"incorporation_date"`
	Website             string `json:"website"`
	BusinessAddress     string `json:"business_address"`
	BusinessDescription string `json:"business_description"`

	OwnerFullName       string `json:"owner_full_name"`
	OwnerEmail          string `json:"owner_email"`
	OwnershipPercentage string `json:"ownership_percentage"`
	IsControlPerson     string `json:"is_control_person"`
	AdditionalOwners    string `json:"additional_owners"`

	Documents []Document `json:"documents"`

	SourceOfFunds         string `json:"source_of_funds"`
	ExpectedMonthlyVolume string `json:"expected_monthly_volume"`
	FundingDescription    string `json:"funding_description"`

	IsMoneyServiceBusiness      string `json:"is_money_service_business"`
	HasComplianceOfficer        string `json:"has_compliance_officer"`
	OperatesInRestrictedRegions string `json:"operates_in_restricted_regions"`
	AMLProgramDescription       string `json:"aml_program_description"`

	AcceptedTerms     bool `json:"accepted_terms"`
	AcceptedPrivacy   bool `json:"accepted_privacy"`
	CertifiedAccuracy bool `json:"certified_accuracy"`
}

// Document references an uploaded verification document.
type Document struct {
	Purpose  string `json:"purpose"`
	Filename string `json:"filename"`
}

// SubmissionResult is what the final wizard step surfaces to the user.
type SubmissionResult struct {
	Success    bool      `json:"success"`
	CustomerID string    `json:"customerId,omitempty"`
	KYCStatus  KYCStatus `json:"kycStatus,omitempty"`
	Message    string    `json:"message"`
	Errors     []string  `json:"errors,omitempty"`
}
