package casefiles

import (
	"net/url"
	"regexp"
	"strings"
)

// nextLinkRe matches "Next" or "Future" followed by a parenthesized link
// target on the same line, e.g. "Next: [Case File 2](https://...)".
var nextLinkRe = regexp.MustCompile(`(?i)(?:Next|Future).*\((.*)\)`)

// FindNextURL returns the link target of the first "next part" reference
// in the body. The bool result is false when the body has no such link,
// which marks the last post of a chain.
func FindNextURL(body string) (string, bool) {
	m := nextLinkRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	ref := strings.TrimSpace(m[1])
	if ref == "" {
		return "", false
	}
	return ref, true
}

// ResolveNextURL resolves a link target found in the post at base.
// Reddit bodies often use relative permalinks such as "/r/nosleep/comments/...".
func ResolveNextURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid post URL %q: %v", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", Errorf(EINVALID, "invalid next link %q: %v", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
