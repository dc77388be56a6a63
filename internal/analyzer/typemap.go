// Package analyzer maps JSON value kinds onto target-language type names.
package analyzer

import (
	"fmt"

	"github.com/mcncl/jsoncs/internal/config"
	"github.com/mcncl/jsoncs/internal/models"
)

// TypeMapper holds the primitive type table used by the generator. It is
// shared by member declarations and by the flat item classes emitted for
// arrays of objects.
type TypeMapper struct {
	types config.TypesConfig
}

// NewTypeMapper creates a TypeMapper with the C# defaults.
func NewTypeMapper() *TypeMapper {
	return &TypeMapper{types: config.DefaultTypes()}
}

// NewTypeMapperWithConfig creates a TypeMapper from a validated type table.
func NewTypeMapperWithConfig(types config.TypesConfig) *TypeMapper {
	return &TypeMapper{types: types}
}

// TypeOf returns the declared type for a value of the given kind.
// Objects, arrays and null all map to the untyped object type.
func (m *TypeMapper) TypeOf(kind models.Kind) string {
	switch kind {
	case models.String:
		return m.types.Text
	case models.Number:
		// JSON does not tell integers from floats.
		return m.types.Float
	case models.Bool:
		return m.types.Bool
	default:
		return m.types.Object
	}
}

// ListOf returns the collection type with the given element type.
func (m *TypeMapper) ListOf(elem string) string {
	return fmt.Sprintf(m.types.List, elem)
}

// UntypedList is the collection type used for empty arrays.
func (m *TypeMapper) UntypedList() string {
	return m.ListOf(m.types.Object)
}
