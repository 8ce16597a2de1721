package patch

import (
	"bytes"
	"encoding/json"
)

// Nullable distingue en un PATCH entre "campo no enviado" y "campo en null".
// - Present=false: no tocar
// - Present=true, Value=nil: limpiar
// - Present=true, Value!=nil: reemplazar
type Nullable[T any] struct {
	Present bool
	Value   *T
}

// Set construye un Nullable presente con valor.
func Set[T any](v T) Nullable[T] {
	return Nullable[T]{Present: true, Value: &v}
}

// Null construye un Nullable presente en null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Present: true}
}

// UnmarshalJSON solo se invoca si la clave viene en el body, por eso
// basta con marcar Present.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Apply devuelve el nuevo valor del campo destino.
func (n Nullable[T]) Apply(current *T) *T {
	if !n.Present {
		return current
	}
	return n.Value
}
