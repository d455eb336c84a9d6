package domain

import (
	"errors"
	"testing"
)

func TestSettings_Limit(t *testing.T) {
	tests := []struct {
		results string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 5 ", 5, false},
		{"", 0, true},
		{"ten", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}
	for _, tc := range tests {
		got, err := Settings{Results: tc.results}.Limit()
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Limit(%q) err = %v, want ErrInvalidInput", tc.results, err)
			}
			var se *InvalidSettingError
			if !errors.As(err, &se) || se.Key != "results" {
				t.Errorf("Limit(%q) expected InvalidSettingError for results, got %v", tc.results, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("Limit(%q) = (%d, %v), want %d", tc.results, got, err, tc.want)
		}
	}
}

func TestSettings_Merge(t *testing.T) {
	yes, no := true, false
	base := Settings{APIKey: "base", Results: "10", UseCanonical: true, DebugMode: true, WordlistLoc: "/tmp/words.txt"}

	tests := []struct {
		name string
		o    Overrides
		want Settings
	}{
		{"empty keeps defaults", Overrides{}, base},
		{
			"strings override",
			Overrides{APIKey: "override", Results: "3"},
			Settings{APIKey: "override", Results: "3", UseCanonical: true, DebugMode: true, WordlistLoc: "/tmp/words.txt"},
		},
		{
			"explicit false wins over true default",
			Overrides{UseCanonical: &no, DebugMode: &no},
			Settings{APIKey: "base", Results: "10", WordlistLoc: "/tmp/words.txt"},
		},
		{"explicit true", Overrides{UseCanonical: &yes}, base},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Merge(tc.o); got != tc.want {
				t.Errorf("Merge = %+v, want %+v", got, tc.want)
			}
		})
	}

	off := Settings{}.Merge(Overrides{UseCanonical: &yes})
	if !off.UseCanonical {
		t.Error("explicit true should switch use_canonical on")
	}
}

func TestSettings_Fingerprint(t *testing.T) {
	a := Settings{APIKey: "k", Results: "10"}
	if a.Fingerprint() != (Settings{APIKey: "k", Results: " 10", DebugMode: true}).Fingerprint() {
		t.Error("debug mode and whitespace must not change the fingerprint")
	}
	for _, b := range []Settings{
		{APIKey: "other", Results: "10"},
		{APIKey: "k", Results: "20"},
		{APIKey: "k", Results: "10", UseCanonical: true},
	} {
		if a.Fingerprint() == b.Fingerprint() {
			t.Errorf("fingerprint of %+v should differ from %+v", b, a)
		}
	}
}
