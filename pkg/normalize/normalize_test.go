package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain ascii", "John Smith", "John Smith"},
		{"spanish accents", "José Martínez", "Jose Martinez"},
		{"mixed accents", "María Muñoz", "Maria Munoz"},
		{"umlaut", "Jürgen Böll", "Jurgen Boll"},
		{"surrounding whitespace", "  Ana García ", "Ana Garcia"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.raw))
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		once := Name(raw)
		assert.Equal(t, once, Name(once))
	})
}

func TestNameDeterministic(t *testing.T) {
	assert.Equal(t, Name("José Martínez"), Name("José Martínez"))
}

func TestMatchProject(t *testing.T) {
	targets := []ProjectRef{
		{ID: 1, Name: "Foo", Code: "A1"},
		{ID: 2, Name: "Bar", Code: ""},
		{ID: 3, Name: "Baz", Code: "C3"},
	}

	t.Run("name and code both match", func(t *testing.T) {
		id, ok := MatchProject(targets, "foo", "a1")
		assert.True(t, ok)
		assert.Equal(t, int64(1), id)
	})

	t.Run("code differs, no match", func(t *testing.T) {
		_, ok := MatchProject(targets, "Foo", "B2")
		assert.False(t, ok)
	})

	t.Run("target lacks code, name-only fallback", func(t *testing.T) {
		id, ok := MatchProject(targets, "BAR", "ZZ")
		assert.True(t, ok)
		assert.Equal(t, int64(2), id)
	})

	t.Run("source lacks code, name-only fallback", func(t *testing.T) {
		id, ok := MatchProject(targets, "baz", "")
		assert.True(t, ok)
		assert.Equal(t, int64(3), id)
	})

	t.Run("no project matches", func(t *testing.T) {
		_, ok := MatchProject(targets, "Qux", "A1")
		assert.False(t, ok)
	})

	t.Run("first match wins on duplicates", func(t *testing.T) {
		dupes := []ProjectRef{
			{ID: 10, Name: "Same", Code: "X"},
			{ID: 11, Name: "Same", Code: "X"},
		}
		id, ok := MatchProject(dupes, "same", "x")
		assert.True(t, ok)
		assert.Equal(t, int64(10), id)
	})

	t.Run("empty target list", func(t *testing.T) {
		_, ok := MatchProject(nil, "Foo", "A1")
		assert.False(t, ok)
	})
}
