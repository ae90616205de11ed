package models

// Identity is the authenticated principal supplied by the identity gateway.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

// Label is the name shown next to things the identity authored.
func (i Identity) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}
