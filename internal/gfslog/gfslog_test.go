package gfslog

import "testing"

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": Debug, "INFO": Info, "Warning": Warning, "error": Error,
	}
	for s, want := range cases {
		got, ok := parseLevel(s)
		if !ok || got != want {
			t.Errorf("parseLevel(%q) = (%v, %v), want (%v, true)", s, got, ok, want)
		}
	}
	if _, ok := parseLevel("bogus"); ok {
		t.Error("expected parseLevel(\"bogus\") to fail")
	}
}

func TestSetLevelFilters(t *testing.T) {
	defer SetLevel(Info)
	SetLevel(Error)
	if current != Error {
		t.Fatalf("SetLevel did not take effect")
	}
}
