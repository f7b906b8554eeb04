package entity

// Delegation es la unidad organizativa regional. Acota el solapamiento de guardias
// y la visibilidad de supervisores.
type Delegation struct {
	ID          int64
	Name        string
	Code        *string
	CountryCode *string
	RegionCode  *string
	Active      bool
}
