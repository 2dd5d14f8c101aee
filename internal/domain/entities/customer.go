package entities

// Customer is the subset of the customer record the lifecycle engine needs:
// identity for linking and a contact channel for status notifications. The
// full customer register lives outside this service.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ContactChannel returns the preferred destination for customer-facing
// messages, or empty when none is on file.
func (c Customer) ContactChannel() string {
	if c.Phone != "" {
		return c.Phone
	}
	return c.Email
}
