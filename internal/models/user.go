package models

// Address represents a user's registered address
type Address struct {
	District string `json:"district"`
	ZipCode  string `json:"zipCode"`
	Number   string `json:"number"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// User represents a registered account on the platform. The JSON field
// names follow the remote service's wire format, including its spelling
// of "especiality".
type User struct {
	ID        int64   `json:"id,omitempty"`
	IsAdmin   bool    `json:"isAdmin"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	CPF       string  `json:"CPF"`
	CRM       string  `json:"CRM,omitempty"`
	Age       int     `json:"age"`
	Sex       string  `json:"sex"`
	Address   Address `json:"address"`
	Contact   string  `json:"contact,omitempty"`
	Type      string  `json:"type,omitempty"`
	Specialty string  `json:"especiality,omitempty"`
	Image     string  `json:"img"`
}

// IsEmpty reports whether the user record is unpopulated
func (u User) IsEmpty() bool {
	return u.ID == 0 && u.Email == ""
}

// RegisterInput is the profile submitted on registration. The
// confirmation field never reaches the wire and the privilege flag is
// server-assigned, so neither appears in the outgoing payload.
type RegisterInput struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"-"`
	IsAdmin         bool    `json:"-"`
	CPF             string  `json:"CPF"`
	CRM             string  `json:"CRM,omitempty"`
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	Address         Address `json:"address"`
	Contact         string  `json:"contact,omitempty"`
	Image           string  `json:"img"`
}

// EditProfileInput is the full replacement set of mutable profile fields.
// The record id comes from the authenticated session, never from here.
type EditProfileInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password,omitempty"`
	CPF      string  `json:"CPF"`
	Age      int     `json:"age"`
	Sex      string  `json:"sex"`
	Address  Address `json:"address"`
	Contact  string  `json:"contact,omitempty"`
	Image    string  `json:"img"`
}
