package route

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid route pattern")

// Pattern matches request paths either exactly or by prefix.
//
// Supported forms:
//
//	/unauthorized      exact match
//	/servers/*         /servers and everything below it
//	/servers/:path*    same as above
type Pattern struct {
	raw      string
	path     string
	wildcard bool
}

func Parse(raw string) (Pattern, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, raw)
	}

	p := Pattern{raw: s, path: s}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		last := s[i+1:]
		if last == "*" || (strings.HasPrefix(last, ":") && strings.HasSuffix(last, "*") && len(last) > 2) {
			p.wildcard = true
			p.path = s[:i]
		}
	}
	if strings.ContainsAny(p.path, "*") {
		return Pattern{}, fmt.Errorf("%w: %q may only end with a wildcard segment", ErrInvalidPattern, raw)
	}

	p.path = strings.TrimSuffix(p.path, "/")
	if p.path == "" && !p.wildcard {
		p.path = "/"
	}
	return p, nil
}

func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether path is covered by the pattern. Prefix patterns only
// match on segment boundaries.
func (p Pattern) Match(path string) bool {
	if path == "" {
		path = "/"
	}
	if !p.wildcard {
		return path == p.path || (p.path != "/" && path == p.path+"/")
	}
	if p.path == "" {
		return true
	}
	if !strings.HasPrefix(path, p.path) {
		return false
	}
	rest := path[len(p.path):]
	return rest == "" || rest[0] == '/'
}

func (p Pattern) String() string {
	return p.raw
}

// Set is an ordered list of patterns; a path is in the set if any pattern matches.
type Set []Pattern

func ParseSet(raws []string) (Set, error) {
	set := make(Set, 0, len(raws))
	for _, raw := range raws {
		p, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

func (s Set) Match(path string) bool {
	for _, p := range s {
		if p.Match(path) {
			return true
		}
	}
	return false
}

func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.raw
	}
	return out
}
