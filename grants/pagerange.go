package grants

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors for the three distinguishable page denial reasons.
// Callers map ErrMalformedPageRange to a validation failure and the other
// two to access failures; the wrapped messages keep the reasons textually
// distinct.
var (
	ErrMalformedPageRange = errors.New("malformed page range")
	ErrPageOutOfBounds    = errors.New("page outside document bounds")
	ErrPageNotAuthorized  = errors.New("page not authorized")
)

// PageSet is a set of 1-based page numbers.
type PageSet map[int]struct{}

// ParsePageRange parses a range string into a page set. The grammar is
// comma-separated tokens, each a single integer or an inclusive start-end
// range: "1-3,5,7-9" yields {1,2,3,5,7,8,9}. An empty string yields the
// empty set. A non-integer token is an error, never silently dropped.
func ParsePageRange(rangeStr string) (PageSet, error) {
	pages := PageSet{}
	if rangeStr == "" {
		return pages, nil
	}

	for _, segment := range strings.Split(rangeStr, ",") {
		token := strings.TrimSpace(segment)
		if start, end, ok := strings.Cut(token, "-"); ok {
			s, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedPageRange, "token %q", token)
			}
			e, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedPageRange, "token %q", token)
			}
			for p := s; p <= e; p++ {
				pages[p] = struct{}{}
			}
			continue
		}

		p, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedPageRange, "token %q", token)
		}
		pages[p] = struct{}{}
	}
	return pages, nil
}

// Contains reports whether page is in the set.
func (ps PageSet) Contains(page int) bool {
	_, ok := ps[page]
	return ok
}

// Pages returns the set in ascending order.
func (ps PageSet) Pages() []int {
	pages := make([]int, 0, len(ps))
	for p := range ps {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// AuthorizePages validates a requested page list against the document bounds
// and the caller's authorization. Out-of-bounds pages are rejected for every
// role, with the valid range stated; pages outside an authorized subset are
// rejected with the authorized range stated instead, so the two denials stay
// distinguishable.
func AuthorizePages(requested []int, totalPages int, auth *Authorization) error {
	if auth == nil {
		return errors.Wrap(ErrPageNotAuthorized, "no authorized page range for this file")
	}

	var invalid []int
	for _, p := range requested {
		if p < 1 || p > totalPages {
			invalid = append(invalid, p)
		}
	}
	if len(invalid) > 0 {
		return errors.Wrapf(ErrPageOutOfBounds,
			"valid pages: 1-%d, invalid pages requested: %s", totalPages, joinInts(invalid))
	}

	if auth.Unrestricted {
		return nil
	}

	allowed, err := ParsePageRange(auth.PageRange)
	if err != nil {
		return err
	}

	var unauthorized []int
	for _, p := range requested {
		if !allowed.Contains(p) {
			unauthorized = append(unauthorized, p)
		}
	}
	if len(unauthorized) > 0 {
		return errors.Wrapf(ErrPageNotAuthorized,
			"authorized pages: %s, unauthorized pages requested: %s", auth.PageRange, joinInts(unauthorized))
	}
	return nil
}

// RequestedPages resolves which pages a request asks for. An explicit query
// wins; a student without one falls back to their full authorized range.
func RequestedPages(query string, auth *Authorization) ([]int, error) {
	if query != "" {
		set, err := ParsePageRange(query)
		if err != nil {
			return nil, err
		}
		return set.Pages(), nil
	}
	if auth != nil && !auth.Unrestricted && auth.PageRange != "" {
		set, err := ParsePageRange(auth.PageRange)
		if err != nil {
			return nil, err
		}
		return set.Pages(), nil
	}
	return nil, errors.Wrap(ErrPageNotAuthorized, "no page range specified")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
