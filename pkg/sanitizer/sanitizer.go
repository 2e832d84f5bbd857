package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
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
	reControlChars = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	reMultiSpace   = regexp.MustCompile(`\s+`)

	supportedRegions = []string{
		"AR",
		"US",
	}

	reValidPhone = regexp.MustCompile(`^(?:|\+?[0-9][0-9\s\-()]{6,18})$`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return reControlChars.ReplaceAllString(s, "")
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeText cleans free-form user text (client names, notes, block and
// cancellation reasons): strips control characters and collapses runs of
// whitespace. Case is preserved.
func SanitizeText(input string) string {
	p := Pipeline{
		stripControl,
		collapseSpaces,
		trim,
	}
	return p.Apply(input)
}

// SanitizeEmail lowercases and trims an email-ish field. Format validation
// is the validator's job, not the sanitizer's.
func SanitizeEmail(input string) string {
	p := Pipeline{
		stripControl,
		trim,
		strings.ToLower,
	}
	return p.Apply(input)
}

// SanitizePhone normalizes a tenant contact phone to E.164. Returns the
// empty string when the input cannot be parsed in any supported region.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" || !reValidPhone.MatchString(phone) {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}
