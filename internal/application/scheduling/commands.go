package scheduling

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// ProposeShiftCommand entrada para crear una guardia.
// DelegationID nil usa la delegación de quien llama; Status nil aplica PLANIFICADA.
type ProposeShiftCommand struct {
	DelegationID *int64
	Start        time.Time
	End          time.Time
	Status       *string
	Assignments  []schedule.AssignmentInput
}

// UpdateShiftCommand entrada para reprogramar una guardia. Solo se aplican los campos
// informados. Assignments distinto de nil reemplaza el conjunto completo, aunque sea vacío.
type UpdateShiftCommand struct {
	Start       *time.Time
	End         *time.Time
	Status      *string
	Assignments *[]schedule.AssignmentInput
}
