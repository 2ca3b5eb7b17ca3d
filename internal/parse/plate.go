package parse

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	separatorRe = regexp.MustCompile(`[\s\-·.]+`)
	plateRe     = regexp.MustCompile(`^[A-Z0-9]{5,8}$`)
	letterRe    = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
)

// Plate normalizes a license plate as typed by a person ("abc-12d",
// " ABC 12D ") into its stored form ("ABC12D").
func Plate(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = separatorRe.ReplaceAllString(s, "")

	if !plateRe.MatchString(s) {
		return "", fmt.Errorf("unable to parse plate %q: want 5 to 8 letters or digits", raw)
	}
	// Plates always mix letters and digits.
	if !letterRe.MatchString(s) || !digitRe.MatchString(s) {
		return "", fmt.Errorf("unable to parse plate %q: needs both letters and digits", raw)
	}
	return s, nil
}
