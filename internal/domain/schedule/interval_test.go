package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02T15:04", s)
	require.NoError(t, err)
	return v
}

func TestValidateShiftRange_InicioIgualFinRechazado(t *testing.T) {
	ini := at(t, "2025-01-10T08:00")
	err := schedule.ValidateShiftRange(ini, ini)
	assert.ErrorIs(t, err, domain.ErrInvalidRange, "una guardia de duración cero no es válida")
}

func TestValidateShiftRange_FinAnteriorRechazado(t *testing.T) {
	err := schedule.ValidateShiftRange(at(t, "2025-01-10T20:00"), at(t, "2025-01-10T08:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestValidateLeaveRange_MismoDiaPermitido(t *testing.T) {
	d := at(t, "2025-03-01T00:00")
	assert.NoError(t, schedule.ValidateLeaveRange(d, d), "un permiso de un día tiene inicio == fin")
	assert.ErrorIs(t, schedule.ValidateLeaveRange(d, d.AddDate(0, 0, -1)), domain.ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	aIni, aFin := at(t, "2025-01-10T08:00"), at(t, "2025-01-10T20:00")

	cases := []struct {
		name     string
		ini, fin string
		want     bool
	}{
		{"solapa por el final", "2025-01-10T14:00", "2025-01-10T22:00", true},
		{"contigua al final", "2025-01-10T20:00", "2025-01-10T22:00", false},
		{"contigua al inicio", "2025-01-10T06:00", "2025-01-10T08:00", false},
		{"contenida", "2025-01-10T09:00", "2025-01-10T10:00", true},
		{"contiene", "2025-01-10T00:00", "2025-01-11T00:00", true},
		{"idéntica", "2025-01-10T08:00", "2025-01-10T20:00", true},
		{"disjunta", "2025-01-11T08:00", "2025-01-11T20:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.Overlaps(aIni, aFin, at(t, tc.ini), at(t, tc.fin))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, schedule.Overlaps(at(t, tc.ini), at(t, tc.fin), aIni, aFin),
				"el solapamiento debe ser simétrico")
		})
	}
}

func TestResolve_ConservaCamposNoInformados(t *testing.T) {
	ini, fin := at(t, "2025-01-10T08:00"), at(t, "2025-01-10T20:00")
	nuevoFin := at(t, "2025-01-10T22:00")

	s, e := schedule.Resolve(ini, fin, nil, &nuevoFin)
	assert.Equal(t, ini, s)
	assert.Equal(t, nuevoFin, e)
}

func TestDateRange_Contains(t *testing.T) {
	from, to := at(t, "2025-01-01T00:00"), at(t, "2025-01-31T00:00")
	r := schedule.DateRange{From: &from, To: &to}

	assert.True(t, r.Contains(from), "los extremos son inclusivos")
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(at(t, "2025-02-01T00:00")))
	assert.True(t, schedule.DateRange{}.Contains(at(t, "1999-01-01T00:00")), "rango vacío no filtra")
}

func TestYearRange(t *testing.T) {
	from, to := schedule.YearRange(2025)
	assert.Equal(t, "2025-01-01", from.Format("2006-01-02"))
	assert.Equal(t, "2026-01-01", to.Format("2006-01-02"))
}
