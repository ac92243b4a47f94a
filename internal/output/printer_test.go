package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tdh8316/handlecheck/internal/check"
)

func sampleReport() check.Report {
	return check.Report{
		Name: "alice",
		Available: []check.Result{
			{Platform: "X", URL: "https://x.com/alice", Status: check.Available, StatusCode: 404},
			{Platform: "Trello", URL: "https://trello.com/alice", Status: check.Available, Err: errors.New("timeout")},
		},
		Taken: []check.Result{
			{Platform: "GitHub", URL: "https://github.com/alice", Status: check.Taken, StatusCode: 200},
		},
	}
}

func TestText(t *testing.T) {
	var sb strings.Builder
	if err := NewPrinter(&sb, true).Text(sampleReport()); err != nil {
		t.Fatal(err)
	}

	want := "\n✅ Available:\n" +
		"X: https://x.com/alice\n" +
		"Trello: https://trello.com/alice\n" +
		"\n❌ Taken:\n" +
		"GitHub: https://github.com/alice\n"
	if sb.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestTextEmptyBuckets(t *testing.T) {
	var sb strings.Builder
	if err := NewPrinter(&sb, true).Text(check.Report{Name: "alice"}); err != nil {
		t.Fatal(err)
	}
	if want := "\n✅ Available:\n\n❌ Taken:\n"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestTextUnknownSection(t *testing.T) {
	rep := sampleReport()
	rep.Unknown = []check.Result{
		{Platform: "Reddit", URL: "https://reddit.com/user/alice", Status: check.Unknown, StatusCode: 429, Reason: "HTTP 429 Too Many Requests"},
	}

	var sb strings.Builder
	if err := NewPrinter(&sb, true).Text(rep); err != nil {
		t.Fatal(err)
	}
	want := "\n❔ Unknown:\nReddit: https://reddit.com/user/alice (HTTP 429 Too Many Requests)\n"
	if !strings.HasSuffix(sb.String(), want) {
		t.Errorf("output %q does not end with %q", sb.String(), want)
	}
}

func TestJSON(t *testing.T) {
	var sb strings.Builder
	if err := NewPrinter(&sb, true).Render(FormatJSON, sampleReport()); err != nil {
		t.Fatal(err)
	}

	var doc jsonReport
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, sb.String())
	}
	if doc.Name != "alice" || len(doc.Available) != 2 || len(doc.Taken) != 1 || doc.Unknown != nil {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Available[1].Error != "timeout" || doc.Available[1].Status != "available" {
		t.Errorf("available[1] = %+v", doc.Available[1])
	}
	if doc.Taken[0].StatusCode != 200 || doc.Taken[0].URL != "https://github.com/alice" {
		t.Errorf("taken[0] = %+v", doc.Taken[0])
	}
}

func TestTable(t *testing.T) {
	var sb strings.Builder
	if err := NewPrinter(&sb, true).Render(FormatTable, sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, s := range []string{"GitHub", "Trello", "taken", "available", "404"} {
		if !strings.Contains(out, s) {
			t.Errorf("table output missing %q:\n%s", s, out)
		}
	}
	if strings.Index(out, "Trello") > strings.Index(out, "GitHub") {
		t.Error("available rows should precede taken rows")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	err := NewPrinter(&strings.Builder{}, true).Render("yaml", sampleReport())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}
