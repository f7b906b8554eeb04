package entity

import "time"

// Team es un equipo de técnicos dentro de una delegación.
type Team struct {
	ID           int64
	Name         string
	DelegationID int64
	Members      []*User
}

// Membership vincula un usuario a un equipo.
type Membership struct {
	ID        int64
	TeamID    int64
	UserID    int64
	CreatedAt time.Time
}
