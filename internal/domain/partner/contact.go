package partner

import (
	"github.com/eyedist/backend/internal/domain/shared"
)

// Contact holds the reachable details shared by parties, distributors and salesmen
type Contact struct {
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

// NormalizeContact validates and trims every contact field
func NormalizeContact(c Contact) (Contact, error) {
	var err error
	if c.ContactPerson, err = shared.OptionalText("INVALID_CONTACT", "Contact person", c.ContactPerson, 100); err != nil {
		return Contact{}, err
	}
	if c.Phone, err = shared.NormalizePhone(c.Phone); err != nil {
		return Contact{}, err
	}
	if c.Email, err = shared.NormalizeEmail(c.Email); err != nil {
		return Contact{}, err
	}
	if c.Address, err = shared.OptionalText("INVALID_ADDRESS", "Address", c.Address, 500); err != nil {
		return Contact{}, err
	}
	return c, nil
}
