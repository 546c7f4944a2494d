package enums

import "fmt"

// DocumentType classifies an evidence document attached to a daily sales record.
type DocumentType string

const (
	DocumentTypeRegisterTape  DocumentType = "register_tape"
	DocumentTypeCardStatement DocumentType = "card_statement"
	DocumentTypeReceipt       DocumentType = "receipt"
	DocumentTypeOther         DocumentType = "other"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeRegisterTape,
	DocumentTypeCardStatement,
	DocumentTypeReceipt,
	DocumentTypeOther,
}

// IsValid reports whether the value matches the canonical document type enum.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts the raw string to DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
