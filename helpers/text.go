package helpers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	digitsRegex     = regexp.MustCompile(`\d+`)
	clinicIDRegex   = regexp.MustCompile(`/clinics/(\d+)`)
	priceJPYRegex   = regexp.MustCompile(`¥\s*([\d,]+)`)
	openCloseRegex  = regexp.MustCompile(`(\d{1,2}:\d{2}).*?(\d{1,2}:\d{2})`)
)

// CleanText collapses any run of whitespace to a single space and trims
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ToInt strips thousands separators and returns the first run of digits
// as an integer, or nil if none is found
func ToInt(s string) *int {
	if s == "" {
		return nil
	}
	match := digitsRegex.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

// ExtractClinicID returns the numeric path segment of a clinic URL
// matching /clinics/<digits>, or an empty string
func ExtractClinicID(url string) string {
	match := clinicIDRegex.FindStringSubmatch(url)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// ParsePriceJPY extracts an integer yen amount from a ¥-prefixed,
// comma-grouped price string, or nil if no amount is present
func ParsePriceJPY(s string) *int {
	match := priceJPYRegex.FindStringSubmatch(s)
	if len(match) < 2 {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

// SplitOpenClose matches two H:MM/HH:MM tokens separated by arbitrary text
// and returns them as (open, close); both empty when no match
func SplitOpenClose(raw string) (string, string) {
	match := openCloseRegex.FindStringSubmatch(raw)
	if len(match) < 3 {
		return "", ""
	}
	return match[1], match[2]
}
