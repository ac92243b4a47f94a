// Package platform holds the table of sites a name is checked against.
package platform

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is the substitution slot in a URL template.
const Placeholder = "{}"

// suggestThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestThreshold = 0.8

// Entry is one platform: a display name and a URL template with one {} slot.
type Entry struct {
	Name string
	URL  string

	// RegexCheck optionally restricts which names the platform accepts.
	RegexCheck string
}

// Resolve substitutes name into the entry's URL template.
func (e Entry) Resolve(name string) string {
	return strings.ReplaceAll(e.URL, Placeholder, name)
}

// Table is an ordered list of platforms. Order is output order.
type Table []Entry

var defaultTable = Table{
	{Name: "X", URL: "https://x.com/{}", RegexCheck: `^[A-Za-z0-9_]{1,15}$`},
	{Name: "Facebook", URL: "https://facebook.com/{}", RegexCheck: `^[A-Za-z0-9.]{5,50}$`},
	{Name: "BuyMeACoffee", URL: "https://buymeacoffee.com/{}", RegexCheck: `^[A-Za-z0-9_]{3,30}$`},
	{Name: "Patreon", URL: "https://patreon.com/{}"},
	{Name: "Facebook Messenger", URL: "https://messenger.com/t/{}"},
	{Name: "Twitter", URL: "https://twitter.com/{}", RegexCheck: `^[A-Za-z0-9_]{1,15}$`},
	{Name: "Reddit", URL: "https://reddit.com/user/{}", RegexCheck: `^[A-Za-z0-9_-]{3,20}$`},
	{Name: "TikTok", URL: "https://tiktok.com/@{}", RegexCheck: `^[A-Za-z0-9_.]{2,24}$`},
	{Name: "LinkedIn", URL: "https://linkedin.com/company/{}"},
	{Name: "Instagram", URL: "https://instagram.com/{}", RegexCheck: `^(?!.*\.\.)(?!\.)[A-Za-z0-9_.]{1,30}(?<!\.)$`},
	{Name: "YouTube", URL: "https://youtube.com/c/{}"},
	{Name: "GitHub", URL: "https://github.com/{}", RegexCheck: `^[A-Za-z0-9](?:[A-Za-z0-9]|-(?=[A-Za-z0-9])){0,38}$`},
	{Name: "Trello", URL: "https://trello.com/{}"},
}

// Default returns a copy of the built-in platform table.
func Default() Table {
	out := make(Table, len(defaultTable))
	copy(out, defaultTable)
	return out
}

// Names lists the platform names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by case-insensitive name.
func (t Table) Lookup(name string) (Entry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Unknown is a requested platform name that is not in the table.
type Unknown struct {
	Name       string
	Suggestion string // closest known name, empty if nothing is close
}

// Select keeps only the named platforms, in table order.
// Names are matched case-insensitively; blanks are ignored.
func (t Table) Select(names []string) (Table, []Unknown) {
	want := make(map[string]bool, len(names))
	var unknown []Unknown

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		e, ok := t.Lookup(n)
		if !ok {
			unknown = append(unknown, Unknown{Name: n, Suggestion: t.suggest(n)})
			continue
		}
		want[strings.ToLower(e.Name)] = true
	}

	out := make(Table, 0, len(want))
	for _, e := range t {
		if want[strings.ToLower(e.Name)] {
			out = append(out, e)
		}
	}
	return out, unknown
}

func (t Table) suggest(name string) string {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	best, bestScore := "", 0.0
	for _, e := range t {
		score := strutil.Similarity(name, e.Name, jw)
		if score > bestScore {
			best, bestScore = e.Name, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

// NormalizeName trims surrounding space and puts name in Unicode NFC form,
// so visually identical input resolves to the same URL.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
