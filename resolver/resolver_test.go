package resolver

import (
	"testing"

	"github.com/erraggy/oasnorm/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := ComponentTable{
		"Pet":       document.Map{"type": "object"},
		"Pet Owner": document.Map{"type": "string"},
	}

	tests := []struct {
		name  string
		ref   string
		found bool
	}{
		{"components prefix", "#/components/schemas/Pet", true},
		{"definitions prefix", "#/definitions/Pet", true},
		{"percent encoded", "#/components/schemas/Pet%20Owner", true},
		{"missing name", "#/components/schemas/Missing", false},
		{"unknown prefix", "#/components/responses/Pet", false},
		{"file ref", "common.yaml#/components/schemas/Pet", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Resolve(tt.ref, table)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.NotNil(t, v)
			} else {
				assert.Nil(t, v)
			}
		})
	}
}

func TestComponentsOf(t *testing.T) {
	t.Run("existing components.schemas", func(t *testing.T) {
		schemas := document.Map{"A": document.Map{}}
		doc := document.Map{"components": document.Map{"schemas": schemas}}
		table := ComponentsOf(doc)
		table["B"] = document.Map{}
		assert.Contains(t, schemas, "B", "table must share storage with the document")
	})

	t.Run("definitions", func(t *testing.T) {
		doc := document.Map{"definitions": document.Map{"A": document.Map{}}}
		table := ComponentsOf(doc)
		assert.Contains(t, table, "A")
		assert.NotContains(t, doc, "components")
	})

	t.Run("created when absent", func(t *testing.T) {
		doc := document.Map{}
		table := ComponentsOf(doc)
		table["A"] = document.Map{}
		schemas := doc["components"].(document.Map)["schemas"].(document.Map)
		assert.Contains(t, schemas, "A")
	})

	t.Run("lookup does not create", func(t *testing.T) {
		doc := document.Map{}
		_, ok := Lookup(doc)
		assert.False(t, ok)
		assert.Empty(t, doc)
	})
}

func TestPointer(t *testing.T) {
	root := document.Map{
		"paths": document.Map{
			"/pets/{id}": document.Map{
				"parameters": document.List{document.Map{"name": "id"}},
			},
		},
	}

	v, ok := Pointer(root, "#/paths/~1pets~1{id}/parameters/0/name")
	require.True(t, ok)
	assert.Equal(t, "id", v)

	v, ok = Pointer(root, "")
	require.True(t, ok)
	assert.Equal(t, root, v)

	_, ok = Pointer(root, "/paths/~1pets~1{id}/parameters/3")
	assert.False(t, ok)
	_, ok = Pointer(root, "/paths/~1pets~1{id}/parameters/x")
	assert.False(t, ok)
	_, ok = Pointer(root, "/paths/missing")
	assert.False(t, ok)
}
