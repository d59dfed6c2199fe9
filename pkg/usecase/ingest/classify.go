package ingest

import (
	"fmt"

	"github.com/agente-ai/agente/pkg/model"
)

// element is the classified form of one payload entry
type element interface {
	isElement()
}

// saleElement is a mapping carrying a sale indicator key
type saleElement struct {
	fields map[string]any
}

// docElement is any payload entry that is not a sale, including non-mapping
// values such as bare strings or numbers
type docElement struct {
	value any
}

func (saleElement) isElement() {}
func (docElement) isElement()  {}

// classify decides whether a payload entry is a sale or a generic document.
// A mapping is a sale iff it contains a sale_date or price_total key.
func classify(v any) element {
	if fields, ok := v.(map[string]any); ok {
		if _, ok := fields["sale_date"]; ok {
			return saleElement{fields: fields}
		}
		if _, ok := fields["price_total"]; ok {
			return saleElement{fields: fields}
		}
	}
	return docElement{value: v}
}

func stringField(fields map[string]any, key, fallback string) string {
	if s, ok := fields[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func intField(fields map[string]any, key string, fallback int) int {
	switch n := fields[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return fallback
	}
}

func floatField(fields map[string]any, key string, fallback float64) float64 {
	switch n := fields[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return fallback
	}
}

// displayName picks a document name from the payload, scanning candidate keys
// in priority order
func displayName(v any, recID model.RawRecordID) string {
	if fields, ok := v.(map[string]any); ok {
		for _, key := range []string{"name", "product_name", "nombre", "title"} {
			if value, ok := fields[key]; ok && value != nil {
				return fmt.Sprint(value)
			}
		}
	}
	return fmt.Sprintf("Dato Crudo %s", recID)
}

// accessLevelOf reads the payload's declared access level, defaulting to
// private
func accessLevelOf(v any) model.AccessLevel {
	if fields, ok := v.(map[string]any); ok {
		if s, ok := fields["access_level"].(string); ok {
			return model.ParseAccessLevel(s)
		}
	}
	return model.AccessPrivate
}
