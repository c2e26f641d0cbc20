package util

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return info.IsDir()
}

// SplitCSV turns a comma separated query value into a cleaned list.
// Empty entries and surrounding whitespace are dropped.
func SplitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseFloatPtr parses v into a float pointer, nil when v is empty.
func ParseFloatPtr(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseIntFallback parses v as a positive integer, returning fallback on
// empty or unparsable input.
func ParseIntFallback(v string, fallback int) int {
	num, err := strconv.Atoi(v)
	if err != nil || num < 0 {
		return fallback
	}
	return num
}
