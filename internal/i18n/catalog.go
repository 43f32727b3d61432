// package i18n resolves localized message templates.
// bundles are immutable once built and safe for concurrent use.
package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// resolves a message key for a locale; implementations fall back to the key itself
type Catalog interface {
	Resolve(key string, params []any, tag language.Tag) string
}

// read-only set of message templates keyed by BCP 47 tag
type Bundle struct {
	fallback language.Tag
	messages map[string]map[string]string
}

// creates a bundle from tag -> key -> template maps; the input is copied
func NewBundle(fallback language.Tag, messages map[string]map[string]string) *Bundle {
	b := &Bundle{
		fallback: fallback,
		messages: make(map[string]map[string]string, len(messages)),
	}

	b.merge(messages)

	return b
}

// returns a new bundle with overrides applied on top of this one
func (b *Bundle) With(overrides map[string]map[string]string) *Bundle {
	next := NewBundle(b.fallback, b.messages)
	next.merge(overrides)

	return next
}

func (b *Bundle) merge(messages map[string]map[string]string) {
	for tag, templates := range messages {
		key := canonical(tag)

		dst, ok := b.messages[key]
		if !ok {
			dst = make(map[string]string, len(templates))
			b.messages[key] = dst
		}

		for k, v := range templates {
			dst[k] = v
		}
	}
}

// returns the default locale of the bundle
func (b *Bundle) Fallback() language.Tag {
	return b.fallback
}

// returns the locales the bundle carries messages for, fallback first
func (b *Bundle) Tags() []language.Tag {
	tags := []language.Tag{b.fallback}

	for key := range b.messages {
		tag, err := language.Parse(key)
		if err != nil || tag == b.fallback {
			continue
		}

		tags = append(tags, tag)
	}

	return tags
}

// reports whether the bundle has messages for tag or one of its parents
func (b *Bundle) Supports(tag language.Tag) bool {
	for {
		if len(b.messages[tag.String()]) > 0 {
			return true
		}

		if tag == language.Und {
			return false
		}

		tag = tag.Parent()
	}
}

// looks up key for tag, walking parent locales and then the fallback locale.
// a miss everywhere yields the key itself.
func (b *Bundle) Resolve(key string, params []any, tag language.Tag) string {
	if template, ok := b.lookup(key, tag); ok {
		return Format(template, params)
	}

	if template, ok := b.lookup(key, b.fallback); ok {
		return Format(template, params)
	}

	return key
}

func (b *Bundle) lookup(key string, tag language.Tag) (string, bool) {
	for {
		if templates, ok := b.messages[tag.String()]; ok {
			if template, ok := templates[key]; ok {
				return template, true
			}
		}

		if tag == language.Und {
			return "", false
		}

		tag = tag.Parent()
	}
}

// substitutes positional {n} placeholders; unknown or out of range placeholders are kept
func Format(template string, params []any) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var sb strings.Builder
	sb.Grow(len(template))

	for i := 0; i < len(template); i++ {
		if template[i] == '{' {
			if end := strings.IndexByte(template[i:], '}'); end > 1 {
				n, err := strconv.Atoi(template[i+1 : i+end])
				if err == nil && n >= 0 && n < len(params) {
					fmt.Fprint(&sb, params[n])
					i += end
					continue
				}
			}
		}

		sb.WriteByte(template[i])
	}

	return sb.String()
}

// normalizes a tag string; unparsable tags are kept verbatim
func canonical(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	return parsed.String()
}
