package domain

import (
	"fmt"
	"strings"
)

// ParseDestinationCode extracts the dictionary code from a destination label
// of the form "Boston (BOS)".
//
//   - The last parenthesized group wins: "New York (JFK) (NY)" yields "NY".
//   - A label without "(" is taken as the code itself: "BOS" yields "BOS".
//   - A missing ")" runs to the end of the label: "Boston (BOS" yields "BOS".
//   - Text after the group is ignored: "Boston (BOS) air" yields "BOS".
//
// An empty label or an empty group returns ErrValidation.
func ParseDestinationCode(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: destination is required", ErrValidation)
	}

	open := strings.LastIndex(label, "(")
	if open < 0 {
		return label, nil
	}

	code := label[open+1:]
	if end := strings.Index(code, ")"); end >= 0 {
		code = code[:end]
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: destination %q has an empty code", ErrValidation, label)
	}
	return code, nil
}

// ResolvedCode returns the structured code when one was submitted and falls
// back to parsing the label otherwise.
func (d DestinationSubmission) ResolvedCode() (string, error) {
	if code := strings.TrimSpace(d.Code); code != "" {
		return code, nil
	}
	return ParseDestinationCode(d.Label)
}
