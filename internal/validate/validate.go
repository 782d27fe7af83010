// Package validate holds the pure checks run before any backend call.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

const MaxMessageLength = 1000

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an address: something@something.tld with
// no whitespace.
func Email(s string) bool {
	return emailRx.MatchString(s)
}

// Field pairs a required field name with whether a value was supplied.
type Field struct {
	Name    string
	Present bool
}

// Required returns the names of the fields that were not supplied, in order.
func Required(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// MissingFieldsMessage formats the joint missing-fields error text.
func MissingFieldsMessage(missing []string) string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MessageTooLong checks the raw, untrimmed body length counted in UTF-16
// code units, so a character outside the Basic Multilingual Plane counts twice.
func MessageTooLong(body string) bool {
	return len(utf16.Encode([]rune(body))) > MaxMessageLength
}

var supportedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// IsImage reports whether the declared content type is in the image family.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// SupportedImage reports whether contentType is one of the accepted image formats.
func SupportedImage(contentType string) bool {
	for _, t := range supportedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
