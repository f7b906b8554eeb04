package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

const dateOnly = "2006-01-02"

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return &v, nil
}

func queryYear(c *fiber.Ctx) (*int, error) {
	raw := c.Query("anio")
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil || y < 1900 || y > 9999 {
		return nil, fmt.Errorf("%w: anio fuera de rango", domain.ErrInvalidInput)
	}
	return &y, nil
}

// parseInstant acepta RFC 3339 o AAAA-MM-DD (medianoche UTC). dateOnlyEnd lleva una
// fecha sin hora al último instante del día, para límites superiores inclusivos.
func parseInstant(field, raw string, dateOnlyEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe ser RFC 3339 o AAAA-MM-DD", domain.ErrInvalidInput, field)
	}
	if dateOnlyEnd {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// parseDate reduce cualquier formato aceptado a la fecha civil (medianoche UTC).
func parseDate(field, raw string) (time.Time, error) {
	t, err := parseInstant(field, raw, false)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// queryRange lee desde/hasta.
func queryRange(c *fiber.Ctx) (schedule.DateRange, error) {
	var r schedule.DateRange
	if raw := c.Query("desde"); raw != "" {
		t, err := parseInstant("desde", raw, false)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if raw := c.Query("hasta"); raw != "" {
		t, err := parseInstant("hasta", raw, true)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, fmt.Errorf("%w: hasta anterior a desde", domain.ErrInvalidRange)
	}
	return r, nil
}
