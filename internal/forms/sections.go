package forms

// Section groups the fields collected on one wizard screen.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Section ids in wizard order. The order drives Next/Previous navigation.
const (
	SectionYourInfo     = "your-info"
	SectionBusinessInfo = "business-info"
	SectionOwnership    = "ownership"
	SectionDocs         = "docs"
	SectionFunds        = "funds"
	SectionCompliance   = "compliance"
	SectionTerms        = "terms"
)

var sections = []Section{
	{
		ID:    SectionYourInfo,
		Title: "Your Information",
		Fields: []Field{
			{ID: "firstName", Label: "First Name", Type: TypeText, Kind: KindPersonalName, Required: true},
			{ID: "lastName", Label: "Last Name", Type: TypeText, Kind: KindPersonalName, Required: true},
			{ID: "email", Label: "Work Email", Type: TypeEmail, Required: true},
			{ID: "jobTitle", Label: "Job Title", Type: TypeText, Kind: KindFreeText},
			{ID: "phone", Label: "Phone Number", Type: TypeText, Kind: KindFreeText},
		},
	},
	{
		ID:    SectionBusinessInfo,
		Title: "Business Information",
		Fields: []Field{
			{ID: "legalBusinessName", Label: "Legal Business Name", Type: TypeText, Kind: KindBusinessName, Required: true},
			{ID: "doingBusinessAs", Label: "Doing Business As", Type: TypeText, Kind: KindBusinessName},
			{ID: "businessType", Label: "Business Type", Type: TypeSelect, Required: true,
				Options: []string{"llc", "corporation", "partnership", "sole_proprietorship", "trust"}},
			{ID: "registrationNumber", Label: "Registration Number", Type: TypeText, Kind: KindFreeText, Required: true},
			{ID: "incorporationDate", Label: "Date of Incorporation", Type: TypeDate, Required: true},
			{ID: "website", Label: "Company Website", Type: TypeURL, Required: true},
			{ID: "businessAddress", Label: "Registered Address", Type: TypeText, Kind: KindFreeText, Required: true},
			{ID: "businessDescription", Label: "What does the business do?", Type: TypeTextarea, Required: true},
		},
	},
	{
		ID:    SectionOwnership,
		Title: "Ownership and Management",
		Fields: []Field{
			{ID: "ownerFullName", Label: "Beneficial Owner Name", Type: TypeText, Kind: KindPersonalName, Required: true},
			{ID: "ownerEmail", Label: "Beneficial Owner Email", Type: TypeEmail, Required: true},
			{ID: "ownershipPercentage", Label: "Ownership Percentage", Type: TypeText, Kind: KindFreeText, Required: true},
			{ID: "isControlPerson", Label: "Is this person a control person?", Type: TypeRadio, Required: true,
				Options: []string{"yes", "no"}, Default: "no"},
			{ID: "additionalOwners", Label: "Additional owners (25%+ stake)", Type: TypeTextarea},
		},
	},
	{
		ID:    SectionDocs,
		Title: "Verification Documents",
		Fields: []Field{
			{ID: "certificateOfIncorporation", Label: "Certificate of Incorporation", Type: TypeFile, Required: true},
			{ID: "proofOfAddress", Label: "Proof of Registered Address", Type: TypeFile, Required: true},
			{ID: "governmentId", Label: "Government ID of Signatory", Type: TypeFile, Required: true},
			{ID: "ownershipChart", Label: "Ownership Chart", Type: TypeFile},
		},
	},
	{
		ID:    SectionFunds,
		Title: "Source of Funds",
		Fields: []Field{
			{ID: "sourceOfFunds", Label: "Primary Source of Funds", Type: TypeSelect, Required: true,
				Options: []string{"business_revenue", "investment_capital", "loans", "personal_savings", "other"}},
			{ID: "expectedMonthlyVolume", Label: "Expected Monthly Volume", Type: TypeSelect, Required: true,
				Options: []string{"under_10k", "10k_100k", "100k_1m", "over_1m"}},
			{ID: "fundingDescription", Label: "Describe the flow of funds", Type: TypeTextarea, Required: true},
		},
	},
	{
		ID:    SectionCompliance,
		Title: "Compliance Questionnaire",
		Fields: []Field{
			{ID: "isMoneyServiceBusiness", Label: "Is the business a money service business?", Type: TypeRadio, Required: true,
				Options: []string{"yes", "no"}, Default: "no"},
			{ID: "hasComplianceOfficer", Label: "Is there a designated compliance officer?", Type: TypeRadio, Required: true,
				Options: []string{"yes", "no"}},
			{ID: "operatesInRestrictedRegions", Label: "Does the business operate in restricted regions?", Type: TypeRadio, Required: true,
				Options: []string{"yes", "no"}, Default: "no"},
			{ID: "amlProgramDescription", Label: "Describe the AML program", Type: TypeTextarea},
		},
	},
	{
		ID:    SectionTerms,
		Title: "Terms and Certification",
		Fields: []Field{
			{ID: "acceptTerms", Label: "Accept Terms of Service", Type: TypeCheckbox, Required: true},
			{ID: "acceptPrivacy", Label: "Accept Privacy Policy", Type: TypeCheckbox, Required: true},
			{ID: "certifyAccuracy", Label: "Certify information is accurate", Type: TypeCheckbox, Required: true},
		},
	},
}

// All returns the sections in wizard order.
func All() []Section {
	return sections
}

// Count returns the number of sections.
func Count() int {
	return len(sections)
}

// ByID returns the section with the given id.
func ByID(id string) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Index returns the zero-based position of the section in wizard order.
func Index(id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Next returns the section after id, or false at the last section.
func Next(id string) (string, bool) {
	i := Index(id)
	if i < 0 || i+1 >= len(sections) {
		return "", false
	}
	return sections[i+1].ID, true
}

// Prev returns the section before id, or false at the first section.
func Prev(id string) (string, bool) {
	i := Index(id)
	if i <= 0 {
		return "", false
	}
	return sections[i-1].ID, true
}

// FieldByID returns the field definition within a section.
func (s Section) FieldByID(fieldID string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == fieldID {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the section's required field definitions.
func (s Section) RequiredFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

// Defaults returns the hardcoded initial values for a section, e.g. radios
// that start on "no".
func (s Section) Defaults() SectionData {
	data := SectionData{}
	for _, f := range s.Fields {
		if f.Default != "" {
			data[f.ID] = TextValue(f.Default)
		}
	}
	return data
}
