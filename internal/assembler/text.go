package assembler

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"SustainabilityScanner/internal/domain"
)

// Cleaner strips markup and collapses whitespace in scraped text.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner builds a cleaner that keeps text only.
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// Text returns plain, single-spaced text.
func (c *Cleaner) Text(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	text := html.UnescapeString(c.policy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// ResolveLink resolves link against baseURL and requires an absolute http(s) URI.
func ResolveLink(baseURL, link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrInvalidLink)
	}

	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidLink, err)
	}

	if !ref.IsAbs() {
		base, err := url.Parse(strings.TrimSpace(baseURL))
		if err != nil || !base.IsAbs() {
			return "", fmt.Errorf("%w: relative link %q without usable base", domain.ErrInvalidLink, link)
		}
		ref = base.ResolveReference(ref)
	}

	if (ref.Scheme != "http" && ref.Scheme != "https") || ref.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLink, ref.String())
	}

	return ref.String(), nil
}
