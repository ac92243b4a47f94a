package platform

import (
	"os"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mcuadros/go-version"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Supported table file format versions: [MinFormatVersion, maxFormatVersion).
const (
	MinFormatVersion = "1.0"
	maxFormatVersion = "2.0"
)

// ErrFormatVersion is returned for table files outside the supported version range.
var ErrFormatVersion = errors.New("unsupported platform table version")

// Load reads a platform table file.
//
// The file is a JSON object:
//
//	{
//	  "version": "1.0",
//	  "platforms": {
//	    "GitHub": {"url": "https://github.com/{}", "regexCheck": "^[A-Za-z0-9-]+$"}
//	  }
//	}
//
// Platforms keep the order they appear in the file.
func Load(filename string) (Table, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read platform table")
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "platform table %s", filename)
	}
	return t, nil
}

// Parse decodes a platform table document. See Load for the format.
func Parse(raw []byte) (Table, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid json")
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, errors.New("top level must be an object")
	}

	v := doc.Get("version").String()
	if v == "" {
		return nil, errors.Wrap(ErrFormatVersion, "missing version")
	}
	if !version.Compare(v, MinFormatVersion, ">=") || !version.Compare(v, maxFormatVersion, "<") {
		return nil, errors.Wrapf(ErrFormatVersion, "got %q, want >= %s and < %s", v, MinFormatVersion, maxFormatVersion)
	}

	platforms := doc.Get("platforms")
	if !platforms.IsObject() {
		return nil, errors.New(`"platforms" must be an object`)
	}

	var (
		t    Table
		seen = map[string]bool{}
		perr error
	)
	platforms.ForEach(func(key, value gjson.Result) bool {
		name := strings.TrimSpace(key.String())
		if name == "" {
			perr = errors.New("empty platform name")
			return false
		}
		if seen[strings.ToLower(name)] {
			perr = errors.Errorf("duplicate platform %q", name)
			return false
		}
		seen[strings.ToLower(name)] = true

		e := Entry{
			Name:       name,
			URL:        value.Get("url").String(),
			RegexCheck: value.Get("regexCheck").String(),
		}
		if e.URL == "" {
			perr = errors.Errorf("platform %q: missing url", name)
			return false
		}
		if !strings.Contains(e.URL, Placeholder) {
			perr = errors.Errorf("platform %q: url %q has no %s slot", name, e.URL, Placeholder)
			return false
		}
		if e.RegexCheck != "" {
			if _, err := regexp2.Compile(e.RegexCheck, 0); err != nil {
				perr = errors.Wrapf(err, "platform %q: invalid regexCheck", name)
				return false
			}
		}

		t = append(t, e)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	if len(t) == 0 {
		return nil, errors.New("no platforms defined")
	}
	return t, nil
}
