package check

import (
	"github.com/sirupsen/logrus"
)

// Status is the classification of one platform.
type Status int

const (
	Available Status = iota
	Taken
	// Unknown is only produced in strict mode.
	Unknown
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Taken:
		return "taken"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

type Result struct {
	Platform string
	URL      string

	Status     Status
	StatusCode int   // 0 when no response was received
	Err        error // transport error, if any
	Reason     string
}

// Report holds one sweep's results, each bucket in table order.
type Report struct {
	Name      string
	Available []Result
	Taken     []Result
	Unknown   []Result
}

// Len is the number of classified platforms.
func (r Report) Len() int {
	return len(r.Available) + len(r.Taken) + len(r.Unknown)
}

type Config struct {
	UserAgent   string
	Strict      bool
	Concurrency int

	Logger logrus.FieldLogger

	// OnResult, if set, is called once per platform as soon as it is classified.
	// Calls never overlap.
	OnResult func(Result)
}
