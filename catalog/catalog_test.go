package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSFKnown(t *testing.T) {
	schema, ok := LookupSF([3]byte{0xD3, 0xA8, 0xAD})
	require.True(t, ok)
	assert.Equal(t, "BNG", schema.ShortName)
}

func TestLookupSFUnknown(t *testing.T) {
	_, ok := LookupSF([3]byte{0xD3, 0xFF, 0xFF})
	assert.False(t, ok)
}

func TestLookupTripletKnown(t *testing.T) {
	schema, ok := LookupTriplet(0x02)
	require.True(t, ok)
	assert.Equal(t, "FQN", schema.ShortName)
	require.Len(t, schema.Components, 3)
	assert.Equal(t, "fqn_name", schema.Components[2].Name)
}

func TestEveryRegisteredSchemaHasComponents(t *testing.T) {
	for id, schema := range sfByID {
		assert.NotEmpty(t, schema.Components, "sf %x (%s) has no components", id, schema.ShortName)
		assert.NotEmpty(t, schema.ShortName, "sf %x has empty short name", id)
	}
	for id, schema := range tripletByID {
		assert.NotEmpty(t, schema.Components, "triplet %x (%s) has no components", id, schema.ShortName)
	}
}

func TestDefaultSchemaIsSingleHexaLengthZero(t *testing.T) {
	s := DefaultSFSchema()
	require.Len(t, s.Components, 1)
	assert.Equal(t, HEXA, s.Components[0].Type)
	assert.Equal(t, 0, s.Components[0].Length)
}
