package recent

import (
	"errors"
	"testing"

	"faq-studio/internal/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://127.0.0.1:8000", false},
		{"https", "https://faq.example.com", false},
		{"missing scheme", "127.0.0.1:8000", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{Enabled: true, BackendURL: tt.url}).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var appErr *core.AppError
			if !errors.As(err, &appErr) || appErr.Code != core.ErrCodeConfiguration {
				t.Errorf("Validate(%q) error = %v, want a configuration error", tt.url, err)
			}
		})
	}
}
