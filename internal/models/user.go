package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a document in the users collection. Email and mobile
// are both optional but at least one must be present; either one works
// as the login identifier. After registration Pin holds the bcrypt hash,
// never the plaintext.
//
// Extra keeps whatever other profile fields the client sent at
// registration. The server treats them as opaque.
type User struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"`
	Email     string                 `bson:"email,omitempty"`
	Mobile    string                 `bson:"mobile,omitempty"`
	Pin       string                 `bson:"pin"`
	CreatedAt time.Time              `bson:"created_at,omitempty"`
	Extra     map[string]interface{} `bson:",inline"`
}

// MarshalJSON flattens Extra into the top level so a record serializes
// the same way the stored document looks.
func (u User) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(u.Extra)+5)
	for k, v := range u.Extra {
		m[k] = v
	}
	if !u.ID.IsZero() {
		m["_id"] = u.ID.Hex()
	}
	if u.Email != "" {
		m["email"] = u.Email
	}
	if u.Mobile != "" {
		m["mobile"] = u.Mobile
	}
	if u.Pin != "" {
		m["pin"] = u.Pin
	}
	if !u.CreatedAt.IsZero() {
		m["created_at"] = u.CreatedAt
	}
	return json.Marshal(m)
}

// Public returns a copy safe to hand back after authentication:
// same record minus the pin hash.
func (u User) Public() User {
	u.Pin = ""
	return u
}
