package domain

// MemberStatus represents the standing of a membership record
type MemberStatus string

const (
	StatusPending  MemberStatus = "pending"
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
)

// Valid reports whether the status is one of the known values
func (s MemberStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// Label returns the portal display label for the status
func (s MemberStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusActive:
		return "Activo"
	case StatusInactive:
		return "Inactivo"
	}
	return string(s)
}

// Gender enum
type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Feminino"
)

// Valid reports whether the gender is one of the known values
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// MaritalStatus enum
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "Solteiro(a)"
	MaritalMarried  MaritalStatus = "Casado(a)"
	MaritalDivorced MaritalStatus = "Divorciado(a)"
	MaritalWidowed  MaritalStatus = "Viúvo(a)"
)

// Valid reports whether the marital status is one of the known values
func (m MaritalStatus) Valid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// NotificationType enum
type NotificationType string

const (
	NotificationMemberRegistration NotificationType = "member_registration"
	NotificationContactMessage     NotificationType = "contact_message"
)
