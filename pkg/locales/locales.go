// Package locales folds per-locale translation fragment files into the
// localized catalog published as filters_i18n.json. Each locale directory
// contributes flat key/value entries; folding keys them by entity id, locale,
// and field so no locale's value can overwrite another's.
package locales

import (
	"strings"
)

// Key prefixes distinguishing entity kinds inside a locale file.
const (
	TagPrefix    = "tag."
	FilterPrefix = "filter."
)

// Table maps entity id → locale → field → translated value.
type Table map[string]map[string]map[string]string

// Set records one translated value. Within the same locale+id+field a later
// call wins, which only happens for duplicate keys inside one file.
func (t Table) Set(id, locale, field, value string) {
	byLocale, ok := t[id]
	if !ok {
		byLocale = make(map[string]map[string]string)
		t[id] = byLocale
	}
	byField, ok := byLocale[locale]
	if !ok {
		byField = make(map[string]string)
		byLocale[locale] = byField
	}
	byField[field] = value
}

// Lookup returns the translated value for id+locale+field.
func (t Table) Lookup(id, locale, field string) (string, bool) {
	value, ok := t[id][locale][field]
	return value, ok
}

// Bundle is the folded localization catalog: one table per entity kind.
type Bundle struct {
	Tags    Table `json:"tags" yaml:"tags"`
	Filters Table `json:"filters" yaml:"filters"`
}

// NewBundle creates an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{
		Tags:    make(Table),
		Filters: make(Table),
	}
}

// Entry is one parsed translation key.
type Entry struct {
	ID    string // entity id, the segment after the prefix
	Field string // field name, the segment after the last dot
}

// ParseKey splits a flat translation key of the form <prefix><id>.<field>.
// The id runs to the first dot after the prefix; the field is everything
// after the last dot in the whole key, so field names cannot contain dots.
// Keys without the prefix, or with an empty id, are skipped rather than
// treated as errors.
func ParseKey(key, prefix string) (Entry, bool) {
	if !strings.HasPrefix(key, prefix) {
		return Entry{}, false
	}

	rest := strings.TrimPrefix(key, prefix)
	dot := strings.Index(rest, ".")
	if dot <= 0 {
		return Entry{}, false
	}

	last := strings.LastIndex(key, ".")
	field := key[last+1:]
	if field == "" {
		return Entry{}, false
	}

	return Entry{ID: rest[:dot], Field: field}, true
}

// fold merges one locale's flat entries into the table.
func (t Table) fold(locale, prefix string, entries []map[string]string) {
	for _, entry := range entries {
		for key, value := range entry {
			parsed, ok := ParseKey(key, prefix)
			if !ok {
				continue
			}
			t.Set(parsed.ID, locale, parsed.Field, value)
		}
	}
}
