package platform

import (
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

const ruleMatchTimeout = 100 * time.Millisecond

// Rules evaluates entries' RegexCheck, compiling each rule once.
// The zero value is ready to use and safe for concurrent use.
type Rules struct {
	cache    sync.Map // platform name -> *regexp2.Regexp
	errCache sync.Map // platform name -> error
}

// Allows reports whether name satisfies the entry's RegexCheck.
// An entry without a rule allows every name.
func (r *Rules) Allows(e Entry, name string) (bool, error) {
	if e.RegexCheck == "" {
		return true, nil
	}
	re, err := r.compile(e)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(name)
	if err != nil {
		return false, errors.Wrapf(err, "%s: regexCheck match", e.Name)
	}
	return ok, nil
}

func (r *Rules) compile(e Entry) (*regexp2.Regexp, error) {
	if v, ok := r.cache.Load(e.Name); ok {
		return v.(*regexp2.Regexp), nil
	}
	if v, ok := r.errCache.Load(e.Name); ok {
		return nil, v.(error)
	}

	re, err := regexp2.Compile(e.RegexCheck, 0)
	if err != nil {
		err = errors.Wrapf(err, "%s: invalid regexCheck", e.Name)
		r.errCache.Store(e.Name, err)
		return nil, err
	}
	re.MatchTimeout = ruleMatchTimeout
	r.cache.Store(e.Name, re)
	return re, nil
}
