package utils

import (
	"testing"
	"time"
)

func TestRequireFields(t *testing.T) {
	payload := map[string]any{"name": "Sunrise Farm", "size": 12.5, "null_field": nil}

	if err := RequireFields(payload, "name", "size"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := RequireFields(payload, "name", "location", "size", "owner_id")
	if err == nil {
		t.Fatal("expected error for missing field")
	}
	// Fails on the first missing field in the order given.
	if got, want := err.Error(), "Missing required field: location"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// A key present with an explicit null counts as missing.
	if err := RequireFields(payload, "null_field"); err == nil {
		t.Error("expected null value to count as missing")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    *time.Time
		wantErr bool
	}{
		{name: "absent", input: nil, want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "valid", input: "2025-03-14", want: datePtr(2025, 3, 14)},
		{name: "wrong layout", input: "14/03/2025", wantErr: true},
		{name: "datetime not accepted", input: "2025-03-14T00:00:00Z", wantErr: true},
		{name: "impossible date", input: "2025-02-30", wantErr: true},
		{name: "non-string", input: 20250314.0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, "planted_date")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if got, want := err.Error(), "Invalid planted_date format. Use YYYY-MM-DD"; got != want {
					t.Errorf("error %q, want %q", got, want)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"farmer@example.com", true},
		{"first.last+tag@sub.domain.co", true},
		{"UPPER@EXAMPLE.ORG", true},
		{"a_b%c-d@host-name.io", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"short-tld@example.c", false},
		{"@example.com", false},
		{"user@", false},
		{"", false},
		{"two@@example.com", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("seven77") {
		t.Error("7 characters should fail")
	}
	if !ValidPassword("eight888") {
		t.Error("8 characters should pass")
	}
	// Length is the only rule: no complexity requirement.
	if !ValidPassword("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("long single-character password should pass")
	}
}

func TestFloatField(t *testing.T) {
	payload := map[string]any{
		"plain":  42.5,
		"quoted": "12.25",
		"bad":    "twelve",
		"wrong":  []any{},
	}
	if v, err := FloatField(payload, "plain"); err != nil || v != 42.5 {
		t.Errorf("plain: got %v, %v", v, err)
	}
	if v, err := FloatField(payload, "quoted"); err != nil || v != 12.25 {
		t.Errorf("quoted: got %v, %v", v, err)
	}
	if v, err := FloatField(payload, "absent"); err != nil || v != 0 {
		t.Errorf("absent: got %v, %v", v, err)
	}
	if _, err := FloatField(payload, "bad"); err == nil {
		t.Error("bad: expected error")
	}
	if _, err := FloatField(payload, "wrong"); err == nil {
		t.Error("wrong type: expected error")
	}
	if _, err := FloatField(map[string]any{"wrong": nil}, "wrong"); err == nil {
		t.Error("explicit null: expected error")
	}
}

// An explicit null is not a value; extractors must reject it instead of
// handing back the zero value.
func TestFieldExtractorsRejectNull(t *testing.T) {
	payload := map[string]any{"field": nil}

	if _, err := StringField(payload, "field"); err == nil {
		t.Error("StringField accepted null")
	} else if got, want := err.Error(), "Invalid value for field: field"; got != want {
		t.Errorf("StringField error %q, want %q", got, want)
	}
	if _, err := FloatField(payload, "field"); err == nil {
		t.Error("FloatField accepted null")
	}
	if _, err := IntField(payload, "field"); err == nil {
		t.Error("IntField accepted null")
	}
}

func TestIntField(t *testing.T) {
	payload := map[string]any{
		"count":   7.0, // JSON numbers decode as float64
		"quoted":  "9",
		"decimal": 3.9,
		"bad":     "many",
	}
	if v, err := IntField(payload, "count"); err != nil || v != 7 {
		t.Errorf("count: got %v, %v", v, err)
	}
	if v, err := IntField(payload, "quoted"); err != nil || v != 9 {
		t.Errorf("quoted: got %v, %v", v, err)
	}
	if v, err := IntField(payload, "decimal"); err != nil || v != 3 {
		t.Errorf("decimal: got %v, %v", v, err)
	}
	if _, err := IntField(payload, "bad"); err == nil {
		t.Error("bad: expected error")
	}
}
