// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

// Metafield kinds understood by the API. Choice kinds carry an option list,
// composite kinds carry child metafields of the same shape.
const (
	MetafieldText           = "text"
	MetafieldTextarea       = "textarea"
	MetafieldHTMLTextarea   = "html-textarea"
	MetafieldMarkdown       = "markdown"
	MetafieldNumber         = "number"
	MetafieldSwitch         = "switch"
	MetafieldDate           = "date"
	MetafieldJSON           = "json"
	MetafieldSelectDropdown = "select-dropdown"
	MetafieldRadioButtons   = "radio-buttons"
	MetafieldCheckBoxes     = "check-boxes"
	MetafieldFile           = "file"
	MetafieldFiles          = "files"
	MetafieldParent         = "parent"
	MetafieldRepeater       = "repeater"
)

// MetafieldKinds lists every metafield kind the API accepts.
var MetafieldKinds = []string{
	MetafieldText,
	MetafieldTextarea,
	MetafieldHTMLTextarea,
	MetafieldMarkdown,
	MetafieldNumber,
	MetafieldSwitch,
	MetafieldDate,
	MetafieldJSON,
	MetafieldSelectDropdown,
	MetafieldRadioButtons,
	MetafieldCheckBoxes,
	MetafieldFile,
	MetafieldFiles,
	MetafieldParent,
	MetafieldRepeater,
}

// Metafield is a single field definition in a content type. Parent and
// repeater fields nest child metafields of the same shape to arbitrary depth.
type Metafield struct {
	Type       string            `json:"type"`
	Key        string            `json:"key"`
	Title      string            `json:"title"`
	Required   bool              `json:"required,omitempty"`
	Value      any               `json:"value,omitempty"`
	Options    []MetafieldOption `json:"options,omitempty"`
	Children   []Metafield       `json:"children,omitempty"`
	HelpText   string            `json:"help_text,omitempty"`
	Repeatable bool              `json:"repeatable,omitempty"`
}

// MetafieldOption is one selectable value of a choice metafield.
type MetafieldOption struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// IsChoiceKind reports whether the kind carries an option list.
func IsChoiceKind(kind string) bool {
	switch kind {
	case MetafieldSelectDropdown, MetafieldRadioButtons, MetafieldCheckBoxes:
		return true
	}
	return false
}

// IsCompositeKind reports whether the kind nests child metafields.
func IsCompositeKind(kind string) bool {
	return kind == MetafieldParent || kind == MetafieldRepeater
}

// ValidateMetafields checks a metafield tree recursively: every field needs a
// key, a title and a known kind, choice kinds need at least one option, and
// children are only allowed on composite kinds.
func ValidateMetafields(fields []Metafield) error {
	for _, field := range fields {
		if err := validateMetafield(field); err != nil {
			return err
		}
	}
	return nil
}

func validateMetafield(field Metafield) error {
	if field.Key == "" {
		return Error.New("metafield is missing a key")
	}
	if field.Title == "" {
		return Error.New("metafield %q is missing a title", field.Key)
	}
	if !knownKind(field.Type) {
		return Error.New("metafield %q has unknown type %q", field.Key, field.Type)
	}
	if IsChoiceKind(field.Type) && len(field.Options) == 0 {
		return Error.New("metafield %q of type %q needs at least one option", field.Key, field.Type)
	}
	if len(field.Children) > 0 && !IsCompositeKind(field.Type) {
		return Error.New("metafield %q of type %q cannot have children", field.Key, field.Type)
	}
	return ValidateMetafields(field.Children)
}

func knownKind(kind string) bool {
	for _, known := range MetafieldKinds {
		if kind == known {
			return true
		}
	}
	return false
}
