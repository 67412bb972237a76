package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrSessionNotFound = errors.New("sesión no encontrada")
	ErrLastLineItem    = errors.New("la factura debe conservar al menos una línea")
	ErrExportFailed    = errors.New("exportación fallida")
)

// Formatos de exportación.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ExportError envuelve cualquier fallo de exportación para que el llamador
// muestre un único aviso genérico. Cause conserva el error original para el log.
type ExportError struct {
	Format string
	Cause  error
}

// NewExportError construye el error de exportación para el formato dado.
func NewExportError(format string, cause error) *ExportError {
	return &ExportError{Format: format, Cause: cause}
}

func (e *ExportError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("exportación %s fallida", e.Format)
	}
	return fmt.Sprintf("exportación %s fallida: %v", e.Format, e.Cause)
}

// Unwrap expone la causa original.
func (e *ExportError) Unwrap() error { return e.Cause }

// Is hace que errors.Is(err, ErrExportFailed) sea verdadero para cualquier ExportError.
func (e *ExportError) Is(target error) bool { return target == ErrExportFailed }
