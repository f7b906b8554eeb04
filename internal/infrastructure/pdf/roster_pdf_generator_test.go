package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

func shift(start time.Time, d time.Duration, assignees ...*entity.ShiftAssignment) *entity.Shift {
	return &entity.Shift{Start: start, End: start.Add(d), Status: entity.DefaultShiftStatus, Assignments: assignees}
}

func assignee(id int64, name string, role string) *entity.ShiftAssignment {
	return &entity.ShiftAssignment{
		UserID:    id,
		User:      &entity.User{ID: id, FirstName: name},
		GuardRole: &entity.GuardRole{Name: role},
	}
}

func TestSummarize_HorasPorTecnico(t *testing.T) {
	base := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	ane := assignee(1, "Ane", "Principal")
	jon := assignee(2, "Jon", "Secundario")

	s := Summarize([]*entity.Shift{
		shift(base, 24*time.Hour, ane, jon),
		shift(base.Add(24*time.Hour), 90*time.Minute, ane),
	})

	assert.Equal(t, 2, s.Shifts)
	assert.Equal(t, "25.50", s.TotalHours.StringFixed(2))
	require.Len(t, s.ByUser, 2)
	assert.Equal(t, "Ane", s.ByUser[0].Name)
	assert.Equal(t, "25.50", s.ByUser[0].Hours.StringFixed(2))
	assert.Equal(t, "Jon", s.ByUser[1].Name)
	assert.Equal(t, "24.00", s.ByUser[1].Hours.StringFixed(2))
}

func TestSummarize_SinGuardias(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Shifts)
	assert.True(t, s.TotalHours.IsZero())
	assert.Empty(t, s.ByUser)
}

func TestAssigneesLabel(t *testing.T) {
	assert.Equal(t, "—", assigneesLabel(nil))
	assert.Equal(t, "Ane (Principal), usuario 7",
		assigneesLabel([]*entity.ShiftAssignment{assignee(1, "Ane", "Principal"), {UserID: 7}}))
}

func TestGenerateRoster_DevuelvePDF(t *testing.T) {
	code := "BIO"
	d := &entity.Delegation{ID: 1, Name: "Bilbao", Code: &code}
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	shifts := []*entity.Shift{shift(from.Add(8*time.Hour), 24*time.Hour, assignee(1, "Ane", "Principal"))}

	g := NewMarotoRosterGenerator(nil)
	out, err := g.GenerateRoster(d, schedule.DateRange{From: &from, To: &to}, shifts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := g.GenerateRoster(d, schedule.DateRange{}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}
