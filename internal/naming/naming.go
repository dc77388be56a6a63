// Package naming turns arbitrary JSON keys and caller-supplied seeds into
// C# identifiers.
//
// Type names drop spaces and every character that is invalid in a Windows
// file name; member names drop spaces and hyphens. Either kind gets a fixed
// prefix when the remaining text does not start with a letter. The mapping is
// stateless: two seeds that normalize to the same identifier are not
// disambiguated.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const (
	// TypePrefix is prepended to type names that do not start with a letter.
	TypePrefix = "Class"
	// MemberPrefix is prepended to member names that do not start with a letter.
	MemberPrefix = "Property"
)

// ErrEmptyIdentifier is returned when nothing is left of a seed after the
// disallowed characters have been removed.
var ErrEmptyIdentifier = errors.New("identifier is empty after normalization")

// invalidFileNameChars mirrors the Windows invalid file name set, which is a
// superset of the POSIX one (NUL and '/').
const invalidFileNameChars = "\"<>|:*?\\/"

func isTypeNameDisallowed(r rune) bool {
	if r == ' ' || r < 0x20 {
		return true
	}
	return strings.ContainsRune(invalidFileNameChars, r)
}

func isMemberNameDisallowed(r rune) bool {
	return r == ' ' || r == '-'
}

// NormalizeTypeName returns a class name derived from seed.
func NormalizeTypeName(seed string) (string, error) {
	return normalize(seed, isTypeNameDisallowed, TypePrefix)
}

// NormalizeMemberName returns a property name derived from seed.
func NormalizeMemberName(seed string) (string, error) {
	return normalize(seed, isMemberNameDisallowed, MemberPrefix)
}

func normalize(seed string, drop func(rune) bool, prefix string) (string, error) {
	name := strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, seed)

	if name == "" {
		return "", fmt.Errorf("seed %q: %w", seed, ErrEmptyIdentifier)
	}
	if first, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(first) {
		name = prefix + name
	}
	return name, nil
}

// Normalizer applies an optional casing pass before the normalization rules.
// The zero value behaves exactly like the package-level functions.
type Normalizer struct {
	// PascalCaseMembers converts member seeds such as "first_name" to
	// "FirstName" before normalization.
	PascalCaseMembers bool
}

// TypeName normalizes a class name seed.
func (n Normalizer) TypeName(seed string) (string, error) {
	return NormalizeTypeName(seed)
}

// MemberName normalizes a property name seed.
func (n Normalizer) MemberName(seed string) (string, error) {
	if n.PascalCaseMembers {
		if cased := strcase.ToCamel(seed); cased != "" {
			seed = cased
		}
	}
	return NormalizeMemberName(seed)
}
