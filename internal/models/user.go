package models

var UserSchema = NewSchema("user", "userId",
	Field{"userId", TypeInteger},
	Field{"contactName", TypeString},
	Field{"emailAddress", TypeString},
	Field{"username", TypeString},
	Field{"password", TypeString},
	Field{"defaultAccountId", TypeInteger},
	Field{"active", TypeInteger},
)

// User is a login able to act on one or more accounts.
type User struct {
	Record
}

func NewUser() *User {
	return &User{Record: newRecord(UserSchema)}
}
