package core

import (
	"net/http/httptest"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Abcd123!", false},
		{"too short", "Ab1!", true},
		{"no uppercase", "abcd123!", true},
		{"no lowercase", "ABCD123!", true},
		{"no digit", "Abcdefg!", true},
		{"no symbol", "Abcd1234", true},
		{"empty", "", true},
		{"all classes long", "Str0ng&Password", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Error("expected invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestDefaultValidatorContentType(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"exact match", "application/json", false},
		{"with charset", "application/json; charset=utf-8", false},
		{"wrong type", "text/plain", true},
		{"empty", "", true},
	}

	v := NewValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			err, _ := v.ContentType(req, MimeTypeJSON)
			if (err != nil) != tc.wantErr {
				t.Errorf("ContentType error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
