package entity

// Seller is a registered book vendor. The password is kept on the struct for
// persistence but is never serialized into responses.
type Seller struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	EMail     string `json:"e_mail"`
	Password  string `json:"-"`
	Books     []Book `json:"books"`
}
