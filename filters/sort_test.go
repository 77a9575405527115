package filters

import "testing"

func TestParseSort(t *testing.T) {
	tests := []struct {
		field     string
		direction string
		want      Sort
	}{
		{"total", "asc", Sort{Field: "total", Direction: "asc"}},
		{"total", "desc", Sort{Field: "total", Direction: "desc"}},
		{"total", "sideways", Sort{Field: "total", Direction: "desc"}},
		{"", "", Sort{Field: "", Direction: "desc"}},
	}
	for _, tt := range tests {
		if got := ParseSort(tt.field, tt.direction); got != tt.want {
			t.Errorf("ParseSort(%q, %q) = %+v, want %+v", tt.field, tt.direction, got, tt.want)
		}
	}
}

func TestSortIsZero(t *testing.T) {
	tests := []struct {
		sort Sort
		want bool
	}{
		{Sort{}, true},
		{Sort{Field: "None", Direction: "asc"}, true},
		{Sort{Field: "total"}, false},
	}
	for _, tt := range tests {
		if got := tt.sort.IsZero(); got != tt.want {
			t.Errorf("IsZero(%+v) = %v, want %v", tt.sort, got, tt.want)
		}
	}
}

func TestSplitTokens(t *testing.T) {
	got := splitTokens("office=1&method=pix&code=true")
	if got["office"] != "1" || got["method"] != "pix" || got["code"] != "true" {
		t.Errorf("splitTokens parsed %v", got)
	}
	if len(splitTokens("")) != 0 {
		t.Error("splitTokens(\"\") should be empty")
	}
	if len(splitTokens("%")) != 0 {
		t.Error("splitTokens(\"%\") should be empty")
	}
}
