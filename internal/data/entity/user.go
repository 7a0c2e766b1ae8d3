package entity

type Address struct {
	Street string `bson:"street" json:"street"`
	City   string `bson:"city" json:"city"`
	State  string `bson:"state" json:"state"`
	Zip    string `bson:"zip" json:"zip"`
}

// User is a customer profile record, independent of Account.
type User struct {
	ID               int     `bson:"id" json:"id"`
	FirstName        string  `bson:"first_name" json:"first_name"`
	LastName         string  `bson:"last_name" json:"last_name"`
	Email            string  `bson:"email" json:"email"`
	Gender           string  `bson:"gender" json:"gender"`
	Phone            string  `bson:"phone" json:"phone"`
	Address          Address `bson:"address" json:"address"`
	RegistrationDate string  `bson:"registration_date" json:"registration_date"`
}

func (u User) RecordID() int { return u.ID }
