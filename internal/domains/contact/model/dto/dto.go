package dto

import (
	"rentdesk/internal/domains/contact/model"
	"rentdesk/shared"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

type CreateContactRequest struct {
	Name    string  `json:"name"    validate:"required,max=255"`
	Phone   string  `json:"phone"   validate:"required,max=32"`
	Email   string  `json:"email"   validate:"omitempty,email,max=255"`
	Review  float64 `json:"review"  validate:"gte=0,lte=5"`
	Payment string  `json:"payment" validate:"omitempty,oneof=Paid Pending"`
}

func (c *CreateContactRequest) ToModel(user string) model.Contact {
	payment := c.Payment
	if payment == "" {
		payment = model.PaymentPending
	}

	return model.Contact{
		ID:       shared.NewID(),
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    model.NormalizeEmail(c.Email),
		Review:   c.Review,
		Payment:  payment,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateContactRequest struct {
	Name    string   `db:"name"    json:"name"    validate:"omitempty,max=255"`
	Phone   string   `db:"phone"   json:"phone"   validate:"omitempty,max=32"`
	Email   string   `db:"email"   json:"email"   validate:"omitempty,email,max=255"`
	Review  *float64 `db:"review"  json:"review"  validate:"omitempty,gte=0,lte=5"`
	Payment string   `db:"payment" json:"payment" validate:"omitempty,oneof=Paid Pending"`
}

func (u UpdateContactRequest) IsEmpty() bool {
	return u.Name == "" && u.Phone == "" && u.Email == "" && u.Review == nil && u.Payment == ""
}

type ContactResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Review  float64 `json:"review"`
	Payment string  `json:"payment"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Review = model.Review
	r.Payment = model.Payment
	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
