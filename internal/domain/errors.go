package domain

import "fmt"

// ErrorKind clasifica los errores de dominio. El conjunto es cerrado: los
// handlers HTTP mapean cada kind a un status code y nada más.
type ErrorKind string

const (
	KindValidation     ErrorKind = "VALIDATION_ERROR"
	KindNotFound       ErrorKind = "NOT_FOUND_ERROR"
	KindPermission     ErrorKind = "PERMISSION_ERROR"
	KindInternal       ErrorKind = "INTERNAL_SERVER_ERROR"
	KindUnique         ErrorKind = "UNIQUE_CONSTRAINT_VIOLATION"
	KindAuthentication ErrorKind = "AUTHENTICATION_ERROR"
)

// Error es el error de dominio que cruza capas: kind cerrado, mensaje legible
// y detalles estructurados opcionales (ids faltantes, errores por item, etc.).
type Error struct {
	Kind    ErrorKind
	Message string
	Details any
}

// Error implementa error. El mensaje original se preserva siempre.
func (e *Error) Error() string { return e.Message }

// NewError construye un error de dominio sin detalles.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorf construye un error de dominio con mensaje formateado.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails adjunta detalles estructurados al error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// KindOf devuelve el kind de un error. Errores sin kind (fallos del driver,
// panics recuperados, etc.) se reportan como INTERNAL_SERVER_ERROR.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return KindInternal
}

// AsError normaliza cualquier error a *Error preservando el mensaje original.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*Error); ok {
		return de
	}
	return &Error{Kind: KindInternal, Message: err.Error()}
}
