package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
)

// BuildApplication maps the accumulated flat form data onto the outbound
// schema. The mapping is pass-through; optional fields left blank become "".
func BuildApplication(data forms.SectionData) Application {
	text := func(fieldID string) string {
		return data[fieldID].Scalar()
	}
	checked := func(fieldID string) bool {
		return data[fieldID].Text == "true"
	}

	app := Application{
		FirstName: text("firstName"),
		LastName:  text("lastName"),
		Email:     text("email"),
		Phone:     text("phone"),
		JobTitle:  text("jobTitle"),

		LegalBusinessName:   text("legalBusinessName"),
		DoingBusinessAs:     text("doingBusinessAs"),
		BusinessType:        text("businessType"),
		RegistrationNumber:  text("registrationNumber"),
		IncorporationDate:   text("incorporationDate"),
		Website:             text("website"),
		BusinessAddress:     text("businessAddress"),
		BusinessDescription: text("businessDescription"),

		OwnerFullName:       text("ownerFullName"),
		OwnerEmail:          text("ownerEmail"),
		OwnershipPercentage: text("ownershipPercentage"),
		IsControlPerson:     text("isControlPerson"),
		AdditionalOwners:    text("additionalOwners"),

		SourceOfFunds:         text("sourceOfFunds"),
		ExpectedMonthlyVolume: text("expectedMonthlyVolume"),
		FundingDescription:    text("fundingDescription"),

		IsMoneyServiceBusiness:      text("isMoneyServiceBusiness"),
		HasComplianceOfficer:        text("hasComplianceOfficer"),
		OperatesInRestrictedRegions: text("operatesInRestrictedRegions"),
		AMLProgramDescription:       text("amlProgramDescription"),

		AcceptedTerms:     checked("acceptTerms"),
		AcceptedPrivacy:   checked("acceptPrivacy"),
		CertifiedAccuracy: checked("certifyAccuracy"),
	}

	docsSection, _ := forms.ByID(forms.SectionDocs)
	for _, f := range docsSection.Fields {
		if v, ok := data[f.ID]; ok && v.File != nil && v.File.Name != "" {
			app.Documents = append(app.Documents, Document{
				Purpose:  f.ID,
				Filename: v.File.Name,
			})
		}
	}

	return app
}

// applicationSchema is checked before any network call so schema-level
// mistakes never reach the provider.
const applicationSchema = `{
	"type": "object",
	"required": [
		"first_name", "last_name", "email",
		"legal_business_name", "business_type", "registration_number",
		"incorporation_date", "website", "business_address",
		"owner_full_name", "owner_email",
		"source_of_funds", "expected_monthly_volume",
		"accepted_terms", "accepted_privacy", "certified_accuracy"
	],
	"properties": {
		"first_name": {"type": "string", "minLength": 1},
		"last_name": {"type": "string", "minLength": 1},
		"email": {"type": "string", "minLength": 5},
		"legal_business_name": {"type": "string", "minLength": 3},
		"business_type": {"type": "string", "minLength": 1},
		"registration_number": {"type": "string", "minLength": 1},
		"incorporation_date": {"type": "string", "minLength": 1},
		"website": {"type": "string", "minLength": 10},
		"business_address": {"type": "string", "minLength": 1},
		"owner_full_name": {"type": "string", "minLength": 1},
		"owner_email": {"type": "string", "minLength": 5},
		"source_of_funds": {"type": "string", "minLength": 1},
		"expected_monthly_volume": {"type": "string", "minLength": 1},
		"accepted_terms": {"type": "boolean", "enum": [true]},
		"accepted_privacy": {"type": "boolean", "enum": [true]},
		"certified_accuracy": {"type": "boolean", "enum": [true]}
	}
}`

// ValidateApplication runs the pre-flight JSON Schema check. The returned
// slice is empty for a valid payload.
func ValidateApplication(app Application) ([]string, error) {
	doc, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(applicationSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
