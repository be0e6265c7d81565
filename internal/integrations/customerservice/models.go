package customerservice

// Customer модель клиента из CustomerService
type Customer struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// DisplayName имя для денормализации в бронь
func (c *Customer) DisplayName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}
