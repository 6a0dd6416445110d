package main

import "testing"

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		raw  string
		want uint32
	}{
		{"471.25", 47125},
		{"41.25", 4125},
		{"1023.25", 102325},
		{"471.2", 47120},
		{"47125", 47125},
	}

	for _, tc := range cases {
		got, err := parseFrequency(tc.raw)
		if err != nil {
			t.Fatalf("parseFrequency(%q) err=%v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseFrequency(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseFrequencyRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "abc", "471.ab", "-1"} {
		if _, err := parseFrequency(raw); err == nil {
			t.Fatalf("parseFrequency(%q) accepted", raw)
		}
	}
}

func TestParseFrequencyRejectsOutOfRange(t *testing.T) {
	// Anything outside the steppable range would overflow the 14-bit
	// frequency word downstream.
	for _, raw := range []string{"41.24", "471", "1023.26", "5000.00", "42949672.96"} {
		if _, err := parseFrequency(raw); err == nil {
			t.Fatalf("parseFrequency(%q) accepted", raw)
		}
	}
}
