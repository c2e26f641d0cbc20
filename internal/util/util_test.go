package util

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
	}
	for _, c := range cases {
		got := SplitCSV(c.raw)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitCSV(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestParseFloatPtr(t *testing.T) {
	if p, err := ParseFloatPtr(""); err != nil || p != nil {
		t.Errorf("empty input should give (nil, nil), got (%v, %v)", p, err)
	}
	p, err := ParseFloatPtr("0.05")
	if err != nil || p == nil || *p != 0.05 {
		t.Errorf("ParseFloatPtr(0.05) = (%v, %v)", p, err)
	}
	if _, err := ParseFloatPtr("abc"); err == nil {
		t.Error("unparsable input should error")
	}
}

func TestParseIntFallback(t *testing.T) {
	if got := ParseIntFallback("", 100); got != 100 {
		t.Errorf("empty input = %d, want fallback", got)
	}
	if got := ParseIntFallback("-5", 100); got != 100 {
		t.Errorf("negative input = %d, want fallback", got)
	}
	if got := ParseIntFallback("42", 100); got != 42 {
		t.Errorf("valid input = %d, want 42", got)
	}
}
