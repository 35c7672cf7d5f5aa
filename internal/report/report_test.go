package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bbtrack/bbtrack/internal/stats"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{125.4, "$125.40"},
		{-50, "-$50.00"},
		{0, "$0.00"},
	}
	for _, tc := range cases {
		if got := Money("$", tc.v); got != tc.want {
			t.Errorf("Money(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}

	if got := SignedMoney("€", 10); got != "+€10.00" {
		t.Errorf("SignedMoney positive: %q", got)
	}
	if got := SignedMoney("€", -10); got != "-€10.00" {
		t.Errorf("SignedMoney negative: %q", got)
	}
}

func TestPrintBarChart(t *testing.T) {
	var buf bytes.Buffer
	PrintBarChart(&buf, "Daily Profit", stats.Series{
		Labels: []string{"2025-06-01", "2025-06-02"},
		Values: []float64{100, -25},
	}, "$")
	out := buf.String()

	if !strings.Contains(out, "Daily Profit") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "█") {
		t.Error("no bars drawn")
	}
	if !strings.Contains(out, "+$100.00") || !strings.Contains(out, "-$25.00") {
		t.Errorf("values missing from output:\n%s", out)
	}
}

func TestPrintBarChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintBarChart(&buf, "Daily Profit", stats.Series{}, "$")
	if !strings.Contains(buf.String(), "(no data)") {
		t.Errorf("empty series placeholder missing:\n%s", buf.String())
	}
}
