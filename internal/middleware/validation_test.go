package middleware

import "testing"

func TestValidateChannelInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"channel id", "UCHnyfMqiRRG1u-2MsSQLbXA", "UCHnyfMqiRRG1u-2MsSQLbXA", false},
		{"handle", "@veritasium", "@veritasium", false},
		{"full url", "https://www.youtube.com/@veritasium", "https://www.youtube.com/@veritasium", false},
		{"trims whitespace", "  @abc  ", "@abc", false},
		{"empty", "", "", true},
		{"newline injection", "@abc\nX-Evil: 1", "", true},
		{"null byte", "abc\x00def", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelInput(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "UCHnyfMqiRRG1u-2MsSQLbXA", "UCHnyfMqiRRG1u-2MsSQLbXA", false},
		{"trims whitespace", " UCabc123456 ", "UCabc123456", false},
		{"empty", "", "", true},
		{"missing UC prefix", "Habc12345678", "", true},
		{"too long", "UC123456789012345678901234567890X", "", true},
		{"invalid chars", "UCabc def", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRunRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "UCabc123_20250301T120000Z.json", "UCabc123_20250301T120000Z.json", false},
		{"empty", "", "", true},
		{"traversal", "../../etc/passwd", "", true},
		{"backslash traversal", "..\\..\\secrets.txt", "", true},
		{"no extension", "UCabc123_20250301T120000Z", "", true},
		{"arbitrary file", "secrets.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateRunRef(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/runs/UCabc_20250301T120000Z.json", "/runs/:ref"},
		{"/api/runs/UCabc_20250301T120000Z.json", "/api/runs/:ref"},
		{"/api/runs", "/api/runs"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
