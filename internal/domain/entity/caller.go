package entity

// Caller identifica a quien invoca una operación. Se construye a partir del token
// y se pasa de forma explícita a cada caso de uso; nunca se guarda en estado global.
type Caller struct {
	UserID       int64
	RoleID       int64
	DelegationID int64
}
