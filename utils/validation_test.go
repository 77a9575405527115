package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"Águia & Filhos Ltda.", "guia-filhos-ltda"},
		{"already-slugged", "already-slugged"},
		{"Office 2", "office-2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"12.345.678/0001-95", true},
		{"12345678000195", true},
		{"1234567800019", false},
		{"123456780001955", false},
	}
	for _, tt := range tests {
		if got := ValidateCNPJ(tt.in); got != tt.want {
			t.Errorf("ValidateCNPJ(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+5511999998888", true},
		{"(11) 99999-8888", true},
		{"123", true},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidatePhone(tt.in); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
