package model

import (
	"strings"

	"rentdesk/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID      = "id"
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldReview  = "review"
	FieldPayment = "payment"
)

const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
)

type Contact struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Phone   string  `db:"phone"`
	Email   string  `db:"email"`
	Review  float64 `db:"review"`
	Payment string  `db:"payment"`
	model.Metadata
}

// NormalizeEmail is the form emails are compared and stored in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail reports whether the contact owns email. An empty address matches nothing.
func (c Contact) SameEmail(email string) bool {
	email = NormalizeEmail(email)

	return email != "" && NormalizeEmail(c.Email) == email
}
