package macros

import (
	"sort"
	"testing"
)

func TestExpandAirlineTokens_BasicIATA(t *testing.T) {
	inputs := []string{"UA", "aa", " DL ", "ua"} // mixed case, duplicates, whitespace

	codes, warnings, err := ExpandAirlineTokens(inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(codes) != 3 {
		t.Errorf("expected 3 airline codes, got %d: %v", len(codes), codes)
	}
	expected := map[string]bool{"UA": true, "AA": true, "DL": true}
	for _, code := range codes {
		if !expected[code] {
			t.Errorf("unexpected airline code: %s", code)
		}
	}
}

func TestExpandAirlineTokens_GroupExpansion(t *testing.T) {
	codes, warnings, err := ExpandAirlineTokens([]string{"GROUP:LOW_COST"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(codes) == 0 {
		t.Fatal("expected some airline codes for LOW_COST group")
	}

	found := false
	for _, code := range codes {
		if code == "FR" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected FR (Ryanair) in LOW_COST expansion, got %v", codes)
	}
}

func TestExpandAirlineTokens_GroupExpansionIsSorted(t *testing.T) {
	codes, _, err := ExpandAirlineTokens([]string{"GROUP:STAR_ALLIANCE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sort.StringsAreSorted(codes) {
		t.Errorf("group expansion should be sorted, got %v", codes)
	}
}

func TestExpandAirlineTokens_MixedCodesAndGroups(t *testing.T) {
	codes, _, err := ExpandAirlineTokens([]string{"B6", "GROUP:ONEWORLD", "AY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]int{}
	for _, code := range codes {
		seen[code]++
	}
	// AY is a Oneworld member; explicit mention plus group expansion must not duplicate it.
	if seen["AY"] != 1 {
		t.Errorf("AY should appear exactly once, got %d in %v", seen["AY"], codes)
	}
	if seen["B6"] != 1 {
		t.Errorf("B6 should survive expansion, got %v", codes)
	}
}

func TestExpandAirlineTokens_UnknownGroup(t *testing.T) {
	if _, _, err := ExpandAirlineTokens([]string{"GROUP:NOPE"}); err == nil {
		t.Fatal("expected error for unknown group token")
	}
}

func TestExpandAirlineTokens_InvalidCode(t *testing.T) {
	for _, bad := range []string{"UAX", "U", "u!"} {
		if _, _, err := ExpandAirlineTokens([]string{bad}); err == nil {
			t.Errorf("expected error for invalid code %q", bad)
		}
	}
}

func TestExpandAirlineTokens_EmptyInputsSkipped(t *testing.T) {
	codes, _, err := ExpandAirlineTokens([]string{"", "  ", "UA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 1 || codes[0] != "UA" {
		t.Errorf("expected [UA], got %v", codes)
	}
}

func TestGetGroupAirlines_Unknown(t *testing.T) {
	if got := GetGroupAirlines("GROUP:NOPE"); got != nil {
		t.Errorf("expected nil for unknown group, got %v", got)
	}
}

func TestIsAirlineGroupToken(t *testing.T) {
	if !IsAirlineGroupToken("group:skyteam") {
		t.Error("lowercase group token should be recognized")
	}
	if IsAirlineGroupToken("UA") {
		t.Error("plain code should not be a group token")
	}
}
