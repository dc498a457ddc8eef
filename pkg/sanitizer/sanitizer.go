// Package sanitizer normalizes free-form user input before it is validated
// and persisted. Strategies compose into pipelines so each caller picks the
// cleanup it needs.
package sanitizer

import (
	"net/url"
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	reMultiSpace   = regexp.MustCompile(`[ \t]+`)
	reMultiNewline = regexp.MustCompile(`\n{3,}`)
)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func stripControlChars(s string) string {
	return reControlChars.ReplaceAllString(s, "")
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

func collapseNewlines(s string) string {
	return reMultiNewline.ReplaceAllString(s, "\n\n")
}

// SanitizeText cleans multi-line free text such as review bodies and listing
// descriptions. Newlines survive, runs of blank lines collapse.
func SanitizeText(input string) string {
	p := Pipeline{
		stripControlChars,
		collapseSpaces,
		collapseNewlines,
		trimSpace,
	}
	return p.Apply(input)
}

// SanitizeTitle cleans single-line labels such as listing titles and
// amenity names.
func SanitizeTitle(input string) string {
	p := Pipeline{
		stripControlChars,
		func(s string) string { return strings.ReplaceAll(s, "\n", " ") },
		collapseSpaces,
		trimSpace,
	}
	return p.Apply(input)
}

// SanitizeSlice applies a strategy to every element, dropping empties and
// duplicates while preserving order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// SanitizeURL normalizes a user-supplied URL, defaulting the scheme to https
// and stripping tracking params. Returns "" when the input cannot be parsed
// into something with a host.
func SanitizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Host = strings.ToLower(u.Host)
	if after, ok := strings.CutPrefix(u.Host, "www."); ok {
		u.Host = after
	}
	u.Path = strings.TrimSuffix(strings.TrimSpace(u.Path), "/")

	q := u.Query()
	qClean := url.Values{}
	for k, v := range q {
		key := strings.TrimSpace(strings.ToLower(k))
		if strings.HasPrefix(key, "utm_") {
			continue
		}
		for _, val := range v {
			if val = strings.TrimSpace(val); val != "" {
				qClean.Add(key, val)
			}
		}
	}
	u.RawQuery = qClean.Encode()

	return u.String()
}
