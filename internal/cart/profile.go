package cart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProfileIncomplete wraps every missing-field validation failure so
// callers can branch on the class without matching messages.
var ErrProfileIncomplete = errors.New("dados do cliente incompletos")

// Profile is the delivery contact required before any add-to-cart or
// checkout action. Name and Reference are optional.
type Profile struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	AddressLine  string `json:"addressLine"`
	Reference    string `json:"reference,omitempty"`
}

// CleanPhone strips everything but digits (DDD + número convention).
func CleanPhone(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalized returns the profile with fields trimmed and the phone reduced
// to digits.
func (p Profile) Normalized() Profile {
	return Profile{
		Name:         strings.TrimSpace(p.Name),
		Phone:        CleanPhone(p.Phone),
		Neighborhood: strings.TrimSpace(p.Neighborhood),
		Street:       strings.TrimSpace(p.Street),
		AddressLine:  strings.TrimSpace(p.AddressLine),
		Reference:    strings.TrimSpace(p.Reference),
	}
}

// Validate checks the required fields on the normalized profile.
func (p Profile) Validate() error {
	n := p.Normalized()
	switch {
	case n.Phone == "":
		return fmt.Errorf("%w: preencha seu WhatsApp", ErrProfileIncomplete)
	case n.Neighborhood == "":
		return fmt.Errorf("%w: preencha o bairro", ErrProfileIncomplete)
	case n.Street == "":
		return fmt.Errorf("%w: preencha a rua", ErrProfileIncomplete)
	case n.AddressLine == "":
		return fmt.Errorf("%w: preencha o número / complemento", ErrProfileIncomplete)
	}
	return nil
}
