package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EnumSuffix is appended to names of promoted enum components.
const EnumSuffix = "Enum"

// ToPascalCase converts a string to PascalCase.
// Any rune that is not a letter or digit separates words; the first letter of
// each word is upper-cased and the rest of the word is left as-is.
// Example: "user_profile" -> "UserProfile"
// Example: "botd.result" -> "BotdResult"
// Example: "incrementalIdentification" -> "IncrementalIdentification"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	titleCaser := cases.Title(language.Und, cases.NoLower)
	var result strings.Builder
	for _, w := range words {
		result.WriteString(titleCaser.String(w))
	}
	return result.String()
}

// EnumName builds the component name for an enum promoted from the property
// or parameter named base: "status" -> "StatusEnum".
// An empty base yields just the suffix.
func EnumName(base string) string {
	return ToPascalCase(base) + EnumSuffix
}

// Disambiguate returns name if it is not taken, otherwise the first of
// name2, name3, ... that is free.
func Disambiguate(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
