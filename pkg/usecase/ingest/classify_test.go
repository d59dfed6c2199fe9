package ingest

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/agente-ai/agente/pkg/model"
)

func TestClassify(t *testing.T) {
	t.Run("sale_date key makes a sale", func(t *testing.T) {
		elem := classify(map[string]any{"sale_date": "2024-01-01 10:00:00"})
		gt.V(t, elem).Required()
		_, ok := elem.(saleElement)
		gt.True(t, ok)
	})

	t.Run("price_total key makes a sale", func(t *testing.T) {
		_, ok := classify(map[string]any{"price_total": 99.5}).(saleElement)
		gt.True(t, ok)
	})

	t.Run("mapping without indicator keys is a document", func(t *testing.T) {
		_, ok := classify(map[string]any{"name": "manual", "text": "..."}).(docElement)
		gt.True(t, ok)
	})

	t.Run("non-mapping values are documents", func(t *testing.T) {
		_, ok := classify("bare string").(docElement)
		gt.True(t, ok)
		_, ok = classify(42.0).(docElement)
		gt.True(t, ok)
		_, ok = classify(nil).(docElement)
		gt.True(t, ok)
	})
}

func TestDisplayName(t *testing.T) {
	recID := model.RawRecordID("rec-1")

	t.Run("name has highest priority", func(t *testing.T) {
		name := displayName(map[string]any{"title": "t", "name": "n", "nombre": "x"}, recID)
		gt.Equal(t, name, "n")
	})

	t.Run("falls through the key priority order", func(t *testing.T) {
		gt.Equal(t, displayName(map[string]any{"nombre": "producto"}, recID), "producto")
		gt.Equal(t, displayName(map[string]any{"title": "titulo"}, recID), "titulo")
		gt.Equal(t, displayName(map[string]any{"product_name": "p", "title": "t"}, recID), "p")
	})

	t.Run("fallback for unnamed values", func(t *testing.T) {
		gt.Equal(t, displayName(map[string]any{"foo": "bar"}, recID), "Dato Crudo rec-1")
		gt.Equal(t, displayName("scalar", recID), "Dato Crudo rec-1")
	})
}

func TestAccessLevelOf(t *testing.T) {
	gt.Equal(t, accessLevelOf(map[string]any{"access_level": "public"}), model.AccessPublic)
	gt.Equal(t, accessLevelOf(map[string]any{"access_level": "private"}), model.AccessPrivate)
	gt.Equal(t, accessLevelOf(map[string]any{}), model.AccessPrivate)
	gt.Equal(t, accessLevelOf("scalar"), model.AccessPrivate)
}

func TestFieldHelpers(t *testing.T) {
	fields := map[string]any{
		"s":     "text",
		"empty": "",
		"f":     2.5,
		"i":     3.0, // JSON numbers decode to float64
	}

	gt.Equal(t, stringField(fields, "s", "dflt"), "text")
	gt.Equal(t, stringField(fields, "empty", "dflt"), "dflt")
	gt.Equal(t, stringField(fields, "missing", "dflt"), "dflt")

	gt.Equal(t, intField(fields, "i", 1), 3)
	gt.Equal(t, intField(fields, "missing", 1), 1)
	gt.Equal(t, intField(fields, "s", 1), 1)

	gt.Equal(t, floatField(fields, "f", 0), 2.5)
	gt.Equal(t, floatField(fields, "missing", 0), 0.0)
}
