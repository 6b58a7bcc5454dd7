package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokendiff.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Config
	}{
		{
			name: "empty",
			in:   "",
			want: Default(),
		},
		{
			name: "all_keys",
			in: `addr = ":9000"
format = "json"
max_tokens = 10
show_equal = false
`,
			want: &Config{
				Addr:      ":9000",
				Format:    "json",
				MaxTokens: 10,
				ShowEqual: false,
			},
		},
		{
			name: "partial",
			in:   `format = "yaml"`,
			want: &Config{
				Addr:      "localhost:8080",
				Format:    "yaml",
				MaxTokens: 1000,
				ShowEqual: true,
			},
		},
		{
			name: "unlimited_tokens",
			in:   `max_tokens = 0`,
			want: &Config{
				Addr:      "localhost:8080",
				Format:    "text",
				MaxTokens: 0,
				ShowEqual: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
		invalid bool
	}{
		{
			name:    "syntax",
			in:      `format = `,
			wantErr: "decoding",
		},
		{
			name:    "unknown_format",
			in:      `format = "html"`,
			wantErr: `unknown format "html"`,
			invalid: true,
		},
		{
			name:    "negative_max_tokens",
			in:      `max_tokens = -1`,
			wantErr: "max_tokens must not be negative",
			invalid: true,
		},
		{
			name:    "empty_addr",
			in:      `addr = ""`,
			wantErr: "addr must not be empty",
			invalid: true,
		},
		{
			name:    "unknown_key",
			in:      `colour = "red"`,
			wantErr: `unknown key "colour"`,
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.in))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v", got, tt.invalid)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
