// Request payload validation and field extraction. Handlers bind JSON
// bodies into map[string]any so that a partial update can distinguish an
// absent key from an explicit null; the helpers here perform the
// presence checks and type coercion on top of that map.
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Syntactic check only: local part, @, domain labels, 2+ letter TLD.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLen is the only password strength rule enforced.
const MinPasswordLen = 8

// RequireFields verifies that every named field is present and non-null
// in the payload, failing on the first missing one in the order given.
func RequireFields(payload map[string]any, names ...string) error {
	for _, name := range names {
		if v, ok := payload[name]; !ok || v == nil {
			return fmt.Errorf("Missing required field: %s", name)
		}
	}
	return nil
}

// ParseDate interprets an optional YYYY-MM-DD payload value. Absent, null
// and empty-string inputs all mean "no date" and return nil without
// error; anything else must parse or the caller gets a 400-worthy error
// naming the field.
func ParseDate(v any, field string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("Invalid %s format. Use YYYY-MM-DD", field)
	}
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("Invalid %s format. Use YYYY-MM-DD", field)
	}
	return &t, nil
}

// ValidEmail reports whether s looks like an email address. No MX or
// existence check is performed.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPassword reports whether s meets the minimum length requirement.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLen
}

// StringField extracts a string value from the payload. An absent key
// yields the zero value; a key present with an explicit null is an
// error, since null only means "clear" for nullable fields and the
// handlers treat those separately.
func StringField(payload map[string]any, name string) (string, error) {
	v, ok := payload[name]
	if !ok {
		return "", nil
	}
	if v == nil {
		return "", fmt.Errorf("Invalid value for field: %s", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("Invalid value for field: %s", name)
	}
	return s, nil
}

// FloatField extracts a numeric value from the payload. JSON numbers
// arrive as float64; numeric strings are coerced for clients that quote
// their numbers. As with StringField, a present null is rejected.
func FloatField(payload map[string]any, name string) (float64, error) {
	v, ok := payload[name]
	if !ok {
		return 0, nil
	}
	if v == nil {
		return 0, fmt.Errorf("Invalid value for field: %s", name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("Invalid value for field: %s", name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("Invalid value for field: %s", name)
	}
}

// IntField extracts an integer value from the payload, truncating JSON
// floats the way the storefront has always sent quantities. As with
// StringField, a present null is rejected.
func IntField(payload map[string]any, name string) (int, error) {
	v, ok := payload[name]
	if !ok {
		return 0, nil
	}
	if v == nil {
		return 0, fmt.Errorf("Invalid value for field: %s", name)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("Invalid value for field: %s", name)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("Invalid value for field: %s", name)
	}
}
