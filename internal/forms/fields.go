// Package forms defines the static onboarding form sections and their fields.
package forms

import "strings"

// FieldType enumerates the supported input kinds.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeSelect   FieldType = "select"
	TypeTextarea FieldType = "textarea"
	TypeFile     FieldType = "file"
	TypeDate     FieldType = "date"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
)

// TextKind carries explicit validation metadata for text fields instead of
// inferring rules from field id substrings.
type TextKind string

const (
	KindFreeText     TextKind = "free"
	KindPersonalName TextKind = "personal-name"
	KindBusinessName TextKind = "business-name"
)

// Field describes one form input. Definitions are static and never mutated.
type Field struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Kind     TextKind  `json:"kind,omitempty"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
	Default  string    `json:"default,omitempty"`
}

// FileMeta describes an uploaded document reference.
type FileMeta struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// FieldValue holds one collected answer. At most one member is set:
// Text for scalar inputs (checkboxes store "true"/"false"), List for
// multi-selects, File for uploads.
type FieldValue struct {
	Text string    `json:"text,omitempty"`
	List []string  `json:"list,omitempty"`
	File *FileMeta `json:"file,omitempty"`
}

// TextValue wraps a plain string answer.
func TextValue(s string) FieldValue {
	return FieldValue{Text: s}
}

// Present reports whether the value counts as filled in: a non-blank
// trimmed string, a non-empty list, or a file with a name.
func (v FieldValue) Present() bool {
	if strings.TrimSpace(v.Text) != "" {
		return true
	}
	if len(v.List) > 0 {
		return true
	}
	return v.File != nil && v.File.Name != ""
}

// Scalar returns the single-string representation used by the validation
// rules: the text itself, the first list entry, or the file name.
func (v FieldValue) Scalar() string {
	if v.Text != "" {
		return v.Text
	}
	if len(v.List) > 0 {
		return v.List[0]
	}
	if v.File != nil {
		return v.File.Name
	}
	return ""
}

// SectionData maps field id to its collected value for one section.
type SectionData map[string]FieldValue

// Merge overlays src onto dst field by field, last write wins.
func (d SectionData) Merge(src SectionData) {
	for id, v := range src {
		d[id] = v
	}
}
