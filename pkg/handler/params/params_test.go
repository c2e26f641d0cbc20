package params

import "testing"

func TestParseVersion(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"", VersionLatest, true},
		{"latest", VersionLatest, true},
		{"any", VersionAny, true},
		{"2", 2, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"two", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseVersion(c.raw)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseVersion(%q) = (%d, %v), want (%d, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestParseCutoffDirectionDefaultsToLess(t *testing.T) {
	if ParseCutoffDirection("") != CutoffLess {
		t.Error(`ParseCutoffDirection("") should default to <`)
	}
	if ParseCutoffDirection(">") != CutoffGreater {
		t.Error(`ParseCutoffDirection(">") should be >`)
	}
	if ParseCutoffDirection("between") != CutoffDirectionUnknown {
		t.Error("unknown direction should not parse")
	}
}

func TestParseCentralityFieldAliases(t *testing.T) {
	if ParseCentralityField("degree") != CentralityFieldDegree {
		t.Error("degree should parse")
	}
	if ParseCentralityField("node_degree") != CentralityFieldDegree {
		t.Error("node_degree should parse as the same field")
	}
	if ParseCentralityField("pValue") != CentralityFieldUnknown {
		t.Error("interaction keys are not centrality keys")
	}
}
