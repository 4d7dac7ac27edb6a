// Package i18n provides localized labels for tones and feasts.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.English,
	language.Greek,
	language.Russian,
}

var matcher = language.NewMatcher(supported)

// Supported returns the supported language tags. The first is the default.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// ParseTag parses value and maps it onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// MatchTag picks a supported tag from an explicit lang parameter, falling
// back to an Accept-Language header and then to the default.
func MatchTag(acceptLanguage, langParam string) language.Tag {
	return Match(acceptLanguage, langParam, Default())
}

// Match is MatchTag with a caller-chosen fallback.
func Match(acceptLanguage, langParam string, fallback language.Tag) language.Tag {
	if langParam != "" {
		if tag, ok := ParseTag(langParam); ok {
			return tag
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			if _, index, confidence := matcher.Match(tags...); confidence != language.No {
				return supported[index]
			}
		}
	}

	return fallback
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ToneName returns the localized name of an Echo, e.g. "Tone 5".
func ToneName(tag language.Tag, echo int) string {
	return Printer(tag).Sprintf(fmt.Sprintf("tone.%d", echo))
}

// FeastName returns the localized name of a movable feast key.
func FeastName(tag language.Tag, key string) string {
	return Printer(tag).Sprintf("feast." + key)
}
