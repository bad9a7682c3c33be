package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"eng", "en"},
		{"ENG", "en"},
		{" jpn ", "ja"},
		{"ja", "ja"},
		{"fre", "fr"},
		{"fra", "fr"},
		{"ger", "de"},
		{"deu", "de"},
		{"chi", "zh"},
		{"und", ""},
		{"unknown", ""},
		{"", ""},
		{"zz", ""},
		{"not-a-language", ""},
	}

	for _, test := range tests {
		if got := Normalize(test.input); got != test.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"eng", "en", true},
		{"jpn", "ja", true},
		{"fre", "fra", true},
		{"eng", "jpn", false},
		{"und", "und", false},
		{"", "", false},
		{"zz", "zz", false},
	}

	for _, test := range tests {
		if got := Match(test.a, test.b); got != test.expected {
			t.Errorf("Match(%q, %q) = %v, expected %v", test.a, test.b, got, test.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"eng", "English"},
		{"ja", "Japanese"},
		{"spa", "Spanish"},
		{"", "Unknown"},
		{"und", "Unknown"},
		{"qqx", "QQX"},
	}

	for _, test := range tests {
		if got := DisplayName(test.input); got != test.expected {
			t.Errorf("DisplayName(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"eng", "en", "JPN", "", "und", "spa"})
	expected := []string{"en", "ja", "es"}

	if len(got) != len(expected) {
		t.Fatalf("NormalizeList() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("NormalizeList()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}
