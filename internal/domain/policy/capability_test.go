package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/policy"
)

func TestFromRoleCode(t *testing.T) {
	assert.Equal(t, policy.Admin, policy.FromRoleCode(entity.RoleCodeAdmin))
	assert.Equal(t, policy.Supervisor, policy.FromRoleCode(entity.RoleCodeSupervisor))
	assert.Equal(t, policy.Technician, policy.FromRoleCode(entity.RoleCodeTechnician))
	assert.Equal(t, policy.Technician, policy.FromRoleCode("AUDITOR"),
		"un código desconocido no debe conceder privilegios")
}

func TestCapability_Orden(t *testing.T) {
	assert.True(t, policy.Admin.AtLeast(policy.Supervisor))
	assert.True(t, policy.Supervisor.AtLeast(policy.Supervisor))
	assert.False(t, policy.Technician.AtLeast(policy.Supervisor))
	assert.Equal(t, "SUPERVISOR", policy.Supervisor.String())
}
