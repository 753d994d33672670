package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
)

// ==========================
// Test Helper Functions
// ==========================

func createField(id string, fieldType forms.FieldType, kind forms.TextKind) forms.Field {
	return forms.Field{
		ID:       id,
		Label:    id,
		Type:     fieldType,
		Kind:     kind,
		Required: true,
	}
}

// ==========================
// Core Rule Tests
// ==========================

func TestValidate_RequiredBlankValues(t *testing.T) {
	types := []forms.FieldType{
		forms.TypeText, forms.TypeEmail, forms.TypeURL, forms.TypeSelect,
		forms.TypeTextarea, forms.TypeFile, forms.TypeDate, forms.TypeCheckbox,
		forms.TypeRadio,
	}

	for _, ft := range types {
		t.Run(string(ft), func(t *testing.T) {
			field := createField("anyField", ft, "")

			for _, value := range []string{"", "   ", "\t\n"} {
				result := Validate(field, value)
				assert.False(t, result.Valid)
				assert.Contains(t, result.Message, "required")
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	field := createField("email", forms.TypeEmail, "")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple address", "jane@x.com", true},
		{"subdomain", "jane.doe@mail.example.co", true},
		{"missing at sign", "janedoe.com", false},
		{"missing domain dot", "jane@xcom", false},
		{"embedded space", "jane doe@x.com", false},
		{"too short", "a@b.", false},
		{"double at", "jane@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(field, tt.value)
			assert.Equal(t, tt.valid, result.Valid, "value: %q", tt.value)
		})
	}
}

func TestValidate_URL(t *testing.T) {
	field := createField("website", forms.TypeURL, "")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"https url", "https://example.com", true},
		{"http url", "http://ex.co/path", true},
		{"no scheme", "example.com/page", false},
		{"ftp scheme", "ftp://example.com", false},
		{"too short", "http://a", false},
		{"scheme only", "https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(field, tt.value)
			assert.Equal(t, tt.valid, result.Valid, "value: %q", tt.value)
		})
	}
}

func TestValidate_PersonalName(t *testing.T) {
	field := createField("firstName", forms.TypeText, forms.KindPersonalName)

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain name", "Jane", true},
		{"hyphenated", "Mary-Anne", true},
		{"apostrophe", "O'Brien", true},
		{"single letter", "J", false},
		{"digits", "Jane2", false},
		{"over fifty chars", "Aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(field, tt.value)
			assert.Equal(t, tt.valid, result.Valid, "value: %q", tt.value)
		})
	}
}

func TestValidate_BusinessName(t *testing.T) {
	field := createField("legalBusinessName", forms.TypeText, forms.KindBusinessName)

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"with suffix", "Acme Trading Co.", true},
		{"ampersand and parens", "Smith & Sons (Holdings)", true},
		{"digits allowed", "42 Capital LLC", true},
		{"too short", "ab", false},
		{"unsupported chars", "Acme #1!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(field, tt.value)
			assert.Equal(t, tt.valid, result.Valid, "value: %q", tt.value)
		})
	}
}

func TestValidate_FreeTextAndTextarea(t *testing.T) {
	text := createField("registrationNumber", forms.TypeText, forms.KindFreeText)
	area := createField("businessDescription", forms.TypeTextarea, "")

	assert.True(t, Validate(text, "HRB-12345#X").Valid, "free text has no charset rule")
	assert.False(t, Validate(text, "x").Valid, "free text below 2 chars")

	assert.True(t, Validate(area, "We import and resell coffee.").Valid)
	assert.False(t, Validate(area, "too short").Valid)
}

func TestValidate_ChoiceTypesPassWhenNonEmpty(t *testing.T) {
	for _, ft := range []forms.FieldType{forms.TypeSelect, forms.TypeRadio, forms.TypeFile, forms.TypeDate} {
		field := createField("choiceField", ft, "")
		assert.True(t, Validate(field, "anything").Valid, "type %s", ft)
	}
}

func TestValidate_CheckboxOnlyTrueCounts(t *testing.T) {
	field := createField("acceptTerms", forms.TypeCheckbox, "")

	assert.True(t, Validate(field, "true").Valid)

	for _, value := range []string{"false", "yes", "1", "checked"} {
		result := Validate(field, value)
		assert.False(t, result.Valid, "value %q", value)
		assert.Contains(t, result.Message, "required")
	}

	assert.False(t, Completed(field, forms.TextValue("false")),
		"a declined checkbox must not count as completed")
	assert.True(t, Completed(field, forms.TextValue("true")))
}

func TestValidate_Deterministic(t *testing.T) {
	field := createField("email", forms.TypeEmail, "")

	first := Validate(field, "jane@x.com")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Validate(field, "jane@x.com"))
	}
}

// ==========================
// Structured Value Tests
// ==========================

func TestValidateValue(t *testing.T) {
	fileField := createField("governmentId", forms.TypeFile, "")
	selectField := createField("sourceOfFunds", forms.TypeSelect, "")

	tests := []struct {
		name  string
		field forms.Field
		value forms.FieldValue
		valid bool
	}{
		{"named file", fileField, forms.FieldValue{File: &forms.FileMeta{Name: "passport.pdf"}}, true},
		{"file without name", fileField, forms.FieldValue{File: &forms.FileMeta{}}, false},
		{"non-empty list", selectField, forms.FieldValue{List: []string{"business_revenue"}}, true},
		{"empty value", selectField, forms.FieldValue{}, false},
		{"blank text", selectField, forms.TextValue("  "), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateValue(tt.field, tt.value).Valid)
		})
	}
}

func TestCompleted_PresentButInvalidDoesNotCount(t *testing.T) {
	field := createField("email", forms.TypeEmail, "")

	assert.False(t, Completed(field, forms.TextValue("not-an-email")))
	assert.True(t, Completed(field, forms.TextValue("jane@x.com")))
	assert.False(t, Completed(field, forms.FieldValue{}))
}
