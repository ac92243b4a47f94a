package output

import (
	"github.com/bytedance/sonic"

	"github.com/tdh8316/handlecheck/internal/check"
)

type jsonResult struct {
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

type jsonReport struct {
	Name      string       `json:"name"`
	Available []jsonResult `json:"available"`
	Taken     []jsonResult `json:"taken"`
	Unknown   []jsonResult `json:"unknown,omitempty"`
}

func toJSONResults(in []check.Result) []jsonResult {
	out := make([]jsonResult, 0, len(in))
	for _, r := range in {
		jr := jsonResult{
			Platform:   r.Platform,
			URL:        r.URL,
			Status:     r.Status.String(),
			StatusCode: r.StatusCode,
			Reason:     r.Reason,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		out = append(out, jr)
	}
	return out
}

// JSON prints the report as one indented JSON document.
func (p *Printer) JSON(rep check.Report) error {
	doc := jsonReport{
		Name:      rep.Name,
		Available: toJSONResults(rep.Available),
		Taken:     toJSONResults(rep.Taken),
	}
	if len(rep.Unknown) > 0 {
		doc.Unknown = toJSONResults(rep.Unknown)
	}

	b, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = p.w.Write(b)
	return err
}
