// Package schedule contiene las reglas puras de planificación de guardias:
// aritmética de intervalos semiabiertos y validación de lotes de asignaciones.
package schedule

import (
	"fmt"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain"
)

// ValidateShiftRange exige end > start (estricto). Una guardia de duración cero se rechaza.
func ValidateShiftRange(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: fecha_fin debe ser posterior a fecha_inicio", domain.ErrInvalidRange)
	}
	return nil
}

// ValidateLeaveRange exige end >= start (inclusivo, a diferencia de las guardias).
func ValidateLeaveRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: fecha_fin debe ser igual o posterior a fecha_inicio", domain.ErrInvalidRange)
	}
	return nil
}

// Overlaps aplica la prueba estándar de solapamiento de intervalos semiabiertos
// [aStart, aEnd) y [bStart, bEnd). Dos guardias contiguas no se solapan.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Resolve calcula el intervalo efectivo de una reprogramación: los campos no
// informados conservan el valor actual.
func Resolve(currentStart, currentEnd time.Time, newStart, newEnd *time.Time) (time.Time, time.Time) {
	start, end := currentStart, currentEnd
	if newStart != nil {
		start = *newStart
	}
	if newEnd != nil {
		end = *newEnd
	}
	return start, end
}

// DateRange filtra por fecha de inicio; ambos extremos son opcionales e inclusivos.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// YearRange devuelve [1 de enero del año, 1 de enero del año siguiente) en UTC.
func YearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}
