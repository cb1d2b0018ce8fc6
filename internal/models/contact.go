package models

// Contact is one CRM record, read-only for the engine. The normalized
// key fields are derived from the raw ones and skipped on the wire, so
// anything that deserializes a snapshot must recompute them.
type Contact struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status"`     // raw CRM label
	StatusKey string `json:"status_key"` // open|won|lost|other
	Owner     string `json:"owner"`
	Origin    string `json:"origin"`

	EmailKey string `json:"-"`
	PhoneKey string `json:"-"`
	NameSlug string `json:"-"`
}
