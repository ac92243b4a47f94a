// Package check sweeps a platform table and classifies a name on each platform.
package check

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tdh8316/handlecheck/internal/httpx"
	"github.com/tdh8316/handlecheck/internal/platform"
)

// ErrEmptyName is returned by Check for a blank name.
var ErrEmptyName = errors.New("name is empty")

type Checker struct {
	client httpx.Doer
	table  platform.Table
	cfg    Config
	rules  platform.Rules
}

func NewChecker(client httpx.Doer, table platform.Table, cfg Config) *Checker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}

	return &Checker{
		client: client,
		table:  table,
		cfg:    cfg,
	}
}

// Check classifies name on every platform in the table. Per-platform failures
// never surface as errors; only an empty name or a cancelled ctx does.
func (c *Checker) Check(ctx context.Context, name string) (Report, error) {
	name = platform.NormalizeName(name)
	if name == "" {
		return Report{}, ErrEmptyName
	}

	results := make([]Result, len(c.table))

	record := func(i int, res Result) {
		results[i] = res
		if c.cfg.OnResult != nil {
			c.cfg.OnResult(res)
		}
	}

	workers := min(c.cfg.Concurrency, len(c.table))
	if workers <= 1 {
		for i, e := range c.table {
			if ctx.Err() != nil {
				break
			}
			record(i, c.checkOne(ctx, name, e))
		}
	} else {
		c.fanOut(ctx, name, workers, record)
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := Report{Name: name}
	for _, res := range results {
		switch res.Status {
		case Taken:
			rep.Taken = append(rep.Taken, res)
		case Unknown:
			rep.Unknown = append(rep.Unknown, res)
		default:
			rep.Available = append(rep.Available, res)
		}
	}
	return rep, nil
}

type indexed struct {
	i   int
	res Result
}

// fanOut checks the table with a bounded worker pool. record is only called
// from the calling goroutine.
func (c *Checker) fanOut(ctx context.Context, name string, workers int, record func(int, Result)) {
	jobs := make(chan int)
	results := make(chan indexed, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- indexed{i: i, res: c.checkOne(ctx, name, c.table[i])}
			}
		}()
	}

	go func() {
		defer close(results)
		wg.Wait()
	}()

	go func() {
		defer close(jobs)
		for i := range c.table {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	for r := range results {
		record(r.i, r.res)
	}
}

func (c *Checker) checkOne(ctx context.Context, name string, e platform.Entry) Result {
	res := Result{
		Platform: e.Name,
		URL:      e.Resolve(name),
	}
	log := c.cfg.Logger.WithFields(logrus.Fields{
		"platform": res.Platform,
		"url":      res.URL,
	})

	if c.cfg.Strict {
		ok, err := c.rules.Allows(e, name)
		if err != nil || !ok {
			res.Status = Unknown
			res.Reason = "name not allowed"
			if err != nil {
				res.Err = err
				res.Reason = err.Error()
			}
			log.WithField("status", res.Status).Debug("skipped: " + res.Reason)
			return res
		}
	}

	res.StatusCode, res.Err = c.probe(ctx, res.URL)
	res.Status, res.Reason = Classify(res.StatusCode, res.Err, c.cfg.Strict)

	log = log.WithFields(logrus.Fields{"status": res.Status, "code": res.StatusCode})
	if res.Err != nil {
		log.WithError(res.Err).Debug("request failed")
	} else {
		log.Debug("checked")
	}
	return res
}

// probe issues one GET and returns the final status code.
func (c *Checker) probe(ctx context.Context, rawURL string) (int, error) {
	req, err := httpx.NewRequest(ctx, http.MethodGet, rawURL, nil, c.cfg.UserAgent)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	// Drain a little so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	return resp.StatusCode, nil
}

// Classify maps a response status code or transport error to a Status.
//
// Default mode: 200 is Taken, everything else (any other code or an error) is
// Available. Strict mode: 200 is Taken, 404 and 410 are Available, the rest is
// Unknown.
func Classify(code int, err error, strict bool) (Status, string) {
	if err != nil {
		if strict {
			return Unknown, "request failed"
		}
		return Available, "request failed"
	}

	switch code {
	case http.StatusOK:
		return Taken, ""
	case http.StatusNotFound, http.StatusGone:
		return Available, ""
	}
	if strict {
		return Unknown, fmt.Sprintf("HTTP %d %s", code, http.StatusText(code))
	}
	return Available, ""
}
