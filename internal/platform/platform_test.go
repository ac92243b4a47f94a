package platform

import (
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	want := []string{
		"X", "Facebook", "BuyMeACoffee", "Patreon", "Facebook Messenger", "Twitter",
		"Reddit", "TikTok", "LinkedIn", "Instagram", "YouTube", "GitHub", "Trello",
	}

	table := Default()
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	seen := map[string]bool{}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %q, want %q", i, got[i], want[i])
		}
		key := strings.ToLower(got[i])
		if seen[key] {
			t.Errorf("duplicate platform %q", got[i])
		}
		seen[key] = true
		if !strings.Contains(table[i].URL, Placeholder) {
			t.Errorf("%s: template %q has no slot", got[i], table[i].URL)
		}
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a[0].Name = "changed"
	if Default()[0].Name != "X" {
		t.Fatal("Default() shares its backing array")
	}
}

func TestResolve(t *testing.T) {
	table := Default()
	tests := []struct {
		platform string
		want     string
	}{
		{"GitHub", "https://github.com/alice"},
		{"X", "https://x.com/alice"},
		{"Facebook Messenger", "https://messenger.com/t/alice"},
		{"Reddit", "https://reddit.com/user/alice"},
		{"TikTok", "https://tiktok.com/@alice"},
		{"LinkedIn", "https://linkedin.com/company/alice"},
		{"YouTube", "https://youtube.com/c/alice"},
	}
	for _, tt := range tests {
		e, ok := table.Lookup(tt.platform)
		if !ok {
			t.Fatalf("%s not in default table", tt.platform)
		}
		if got := e.Resolve("alice"); got != tt.want {
			t.Errorf("%s: Resolve = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	e, ok := Default().Lookup("github")
	if !ok || e.Name != "GitHub" {
		t.Fatalf("Lookup(github) = %+v, %v", e, ok)
	}
	if _, ok := Default().Lookup("myspace"); ok {
		t.Fatal("Lookup(myspace) found an entry")
	}
}

func TestSelect(t *testing.T) {
	selected, unknown := Default().Select([]string{"trello", " ", "GitHub", "Githb", "zzzz", "x"})

	got := selected.Names()
	want := []string{"X", "GitHub", "Trello"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("selected = %v, want %v (table order)", got, want)
	}

	if len(unknown) != 2 {
		t.Fatalf("unknown = %+v, want 2 entries", unknown)
	}
	if unknown[0].Name != "Githb" || unknown[0].Suggestion != "GitHub" {
		t.Errorf("unknown[0] = %+v, want Githb -> GitHub", unknown[0])
	}
	if unknown[1].Name != "zzzz" || unknown[1].Suggestion != "" {
		t.Errorf("unknown[1] = %+v, want zzzz without suggestion", unknown[1])
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"alice", "alice"},
		{"  alice\t", "alice"},
		{"e\u0301cole", "\u00e9cole"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
