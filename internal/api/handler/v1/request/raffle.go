package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	nameExp    = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneExp   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeExp = regexp.MustCompile(`^\d{6}$`)
)

type CreateOrderRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
	NumberOfEntries int    `json:"numberOfEntries"`
}

func (req *CreateOrderRequest) Validate() error {
	// A missing count means one ticket.
	if req.NumberOfEntries == 0 {
		req.NumberOfEntries = 1
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 50), validation.Match(nameExp)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.Address, validation.Required, validation.Length(10, 200)),
		validation.Field(&req.State, validation.Required),
		validation.Field(&req.Pincode, validation.Required, validation.Match(pincodeExp)),
		validation.Field(&req.NumberOfEntries, validation.Min(1), validation.Max(60)),
	)
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (req *VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RazorpayOrderID, validation.Required),
		validation.Field(&req.RazorpayPaymentID, validation.Required),
		validation.Field(&req.RazorpaySignature, validation.Required),
	)
}
