package entity

// Account is a login credential. Profile data lives in User and is not linked.
type Account struct {
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
}
