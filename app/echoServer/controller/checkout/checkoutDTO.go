package checkout

// CheckoutReq is the contact form submitted to place the order.
// swagger:model CheckoutReq
type CheckoutReq struct {
	FirstName string `json:"firstname" validate:"required"`
	Surname   string `json:"surname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164"`
}
