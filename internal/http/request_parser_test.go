package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseTransactionID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9007199254740993", 9007199254740993, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodDelete, "/", nil)
		r.SetPathValue("id", tt.raw)
		got, err := parseTransactionID(r)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseTransactionID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestParseDateAndClock(t *testing.T) {
	y, m, d, err := parseDate(" 2024-02-29 ")
	if err != nil || y != 2024 || m != time.February || d != 29 {
		t.Fatalf("parseDate: %d %v %d %v", y, m, d, err)
	}
	if _, _, _, err := parseDate("2023-02-29"); err == nil {
		t.Fatal("expected error for a non-existent date")
	}

	h, min, err := parseClock("07:05")
	if err != nil || h != 7 || min != 5 {
		t.Fatalf("parseClock: %d %d %v", h, min, err)
	}
	if _, _, err := parseClock("7pm"); err == nil {
		t.Fatal("expected error for 7pm")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("Beli\x00 gula\x07\t"); got != "Beli gula\t" {
		t.Fatalf("sanitizeInput = %q", got)
	}
}
