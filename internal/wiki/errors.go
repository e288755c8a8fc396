package wiki

import (
	"fmt"
	"strings"
)

// PageError indicates no page exists for the requested title.
type PageError struct {
	Title string
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q does not match any pages", e.Title)
}

// DisambiguationError indicates the title resolves to a disambiguation page
// rather than a concrete article. Options lists the candidate titles.
type DisambiguationError struct {
	Title   string
	Options []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("%q may refer to: %s", e.Title, strings.Join(e.Options, ", "))
}
