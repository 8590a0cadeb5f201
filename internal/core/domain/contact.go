package domain

// Contact is an operator (mechanic, towing, ...) that can be assigned to a request.
type Contact struct {
	ID    ID          `json:"id"`
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Email string      `json:"email"`
	Role  ContactRole `json:"role"`
}

type ContactRole string

const (
	ContactMechanic  ContactRole = "mechanic"
	ContactTowing    ContactRole = "towing"
	ContactEmergency ContactRole = "emergency"
	ContactSupport   ContactRole = "support"
)

func (r ContactRole) Valid() bool {
	switch r {
	case ContactMechanic, ContactTowing, ContactEmergency, ContactSupport:
		return true
	}
	return false
}

// ContactInput is the body for POST/PUT /api/contacts.
type ContactInput struct {
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Email string      `json:"email"`
	Role  ContactRole `json:"role"`
}
