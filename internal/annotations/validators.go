package annotations

import (
	"fmt"
	"strings"
)

// ValidateOneOf returns a validator accepting exactly the given values
func ValidateOneOf(values ...string) func(interface{}) error {
	return func(v interface{}) error {
		s, _ := v.(string)
		for _, valid := range values {
			if s == valid {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(values, ", "), s)
	}
}

// ValidateNotBlank rejects empty or whitespace-only values
func ValidateNotBlank(v interface{}) error {
	s, _ := v.(string)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// ValidateIdentifier accepts names usable as the suffix of a generated setter
func ValidateIdentifier(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return fmt.Errorf("'%s' contains invalid character %q", s, r)
	}
	return nil
}

// ValidateSingleWord rejects positional text made of more than one word
func ValidateSingleWord(name string) CustomValidator {
	return func(a *ParsedAnnotation) error {
		switch len(a.Positional) {
		case 0:
			return fmt.Errorf("//taglib::%s requires a %s", a.Type, name)
		case 1:
			return nil
		default:
			return fmt.Errorf("//taglib::%s takes a single %s, got %d words", a.Type, name, len(a.Positional))
		}
	}
}

// ValidateNotEmptyText rejects directives without positional text
func ValidateNotEmptyText(name string) CustomValidator {
	return func(a *ParsedAnnotation) error {
		if strings.TrimSpace(a.Text()) == "" {
			return fmt.Errorf("//taglib::%s requires %s", a.Type, name)
		}
		return nil
	}
}
