package i18n

import (
	"golang.org/x/text/language"
)

// negotiates the response locale from an Accept-Language header
type Matcher struct {
	tags    []language.Tag
	matcher language.Matcher
}

// creates a matcher over the supported tags; the first tag is the default
func NewMatcher(tags ...language.Tag) *Matcher {
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}

	return &Matcher{
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

// returns the default locale
func (m *Matcher) Default() language.Tag {
	return m.tags[0]
}

// returns the best supported locale for the header, or the default
func (m *Matcher) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return m.Default()
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return m.Default()
	}

	// use the index: the matched tag itself may carry -u-rg extensions
	_, index, confidence := m.matcher.Match(desired...)
	if confidence == language.No {
		return m.Default()
	}

	return m.tags[index]
}
