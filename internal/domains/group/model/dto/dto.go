package dto

import (
	"rentdesk/internal/domains/group/model"
	"rentdesk/shared"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

type SocialMedia struct {
	Instagram string `json:"instagram" validate:"omitempty,max=255"`
	TikTok    string `json:"tiktok"    validate:"omitempty,max=255"`
	Snapchat  string `json:"snapchat"  validate:"omitempty,max=255"`
	Facebook  string `json:"facebook"  validate:"omitempty,max=255"`
}

type CreateGroupRequest struct {
	Name                 string      `json:"name"                   validate:"required,max=255"`
	Type                 string      `json:"type"                   validate:"omitempty,max=100"`
	Color                string      `json:"color"                  validate:"omitempty,max=32"`
	CRNumber             string      `json:"cr_number"              validate:"omitempty,max=64"`
	TourismLicenseNumber string      `json:"tourism_license_number" validate:"omitempty,max=64"`
	LocationDescription  string      `json:"location_description"   validate:"omitempty,max=1000"`
	GoogleMapsLocation   string      `json:"google_maps_location"   validate:"omitempty,max=1000"`
	PhoneNumber          string      `json:"phone_number"           validate:"omitempty,max=32"`
	SocialMedia          SocialMedia `json:"social_media"`
	BankName             string      `json:"bank_name"              validate:"omitempty,max=255"`
	AccountIBAN          string      `json:"account_iban"           validate:"omitempty,max=64"`
	AccountName          string      `json:"account_name"           validate:"omitempty,max=255"`
}

func (c *CreateGroupRequest) ToModel(user string) model.Group {
	return model.Group{
		ID:                   shared.NewID(),
		Name:                 c.Name,
		Type:                 c.Type,
		Color:                c.Color,
		CRNumber:             c.CRNumber,
		TourismLicenseNumber: c.TourismLicenseNumber,
		LocationDescription:  c.LocationDescription,
		GoogleMapsLocation:   c.GoogleMapsLocation,
		PhoneNumber:          c.PhoneNumber,
		Instagram:            c.SocialMedia.Instagram,
		TikTok:               c.SocialMedia.TikTok,
		Snapchat:             c.SocialMedia.Snapchat,
		Facebook:             c.SocialMedia.Facebook,
		BankName:             c.BankName,
		AccountIBAN:          c.AccountIBAN,
		AccountName:          c.AccountName,
		Metadata:             gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateGroupRequest struct {
	Name                 string `db:"name"                   json:"name"                   validate:"omitempty,max=255"`
	Type                 string `db:"group_type"             json:"type"                   validate:"omitempty,max=100"`
	Color                string `db:"color"                  json:"color"                  validate:"omitempty,max=32"`
	CRNumber             string `db:"cr_number"              json:"cr_number"              validate:"omitempty,max=64"`
	TourismLicenseNumber string `db:"tourism_license_number" json:"tourism_license_number" validate:"omitempty,max=64"`
	LocationDescription  string `db:"location_description"   json:"location_description"   validate:"omitempty,max=1000"`
	GoogleMapsLocation   string `db:"google_maps_location"   json:"google_maps_location"   validate:"omitempty,max=1000"`
	PhoneNumber          string `db:"phone_number"           json:"phone_number"           validate:"omitempty,max=32"`
	Instagram            string `db:"social_instagram"       json:"instagram"              validate:"omitempty,max=255"`
	TikTok               string `db:"social_tiktok"          json:"tiktok"                 validate:"omitempty,max=255"`
	Snapchat             string `db:"social_snapchat"        json:"snapchat"               validate:"omitempty,max=255"`
	Facebook             string `db:"social_facebook"        json:"facebook"               validate:"omitempty,max=255"`
	BankName             string `db:"bank_name"              json:"bank_name"              validate:"omitempty,max=255"`
	AccountIBAN          string `db:"account_iban"           json:"account_iban"           validate:"omitempty,max=64"`
	AccountName          string `db:"account_name"           json:"account_name"           validate:"omitempty,max=255"`
}

type GroupResponse struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Type                 string      `json:"type"`
	Color                string      `json:"color"`
	CRNumber             string      `json:"cr_number"`
	TourismLicenseNumber string      `json:"tourism_license_number"`
	LocationDescription  string      `json:"location_description"`
	GoogleMapsLocation   string      `json:"google_maps_location"`
	PhoneNumber          string      `json:"phone_number"`
	SocialMedia          SocialMedia `json:"social_media"`
	BankName             string      `json:"bank_name"`
	AccountIBAN          string      `json:"account_iban"`
	AccountName          string      `json:"account_name"`
	gDto.Metadata
}

func (r *GroupResponse) FromModel(model model.Group) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Color = model.Color
	r.CRNumber = model.CRNumber
	r.TourismLicenseNumber = model.TourismLicenseNumber
	r.LocationDescription = model.LocationDescription
	r.GoogleMapsLocation = model.GoogleMapsLocation
	r.PhoneNumber = model.PhoneNumber
	r.SocialMedia = SocialMedia{
		Instagram: model.Instagram,
		TikTok:    model.TikTok,
		Snapchat:  model.Snapchat,
		Facebook:  model.Facebook,
	}
	r.BankName = model.BankName
	r.AccountIBAN = model.AccountIBAN
	r.AccountName = model.AccountName
	r.Metadata.FromModel(model.Metadata)
}

type GetGroupsResponse struct {
	Groups    []GroupResponse `json:"groups"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGroupsResponse) FromModels(models []model.Group, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Groups = make([]GroupResponse, len(models))
	for i, mod := range models {
		r.Groups[i].FromModel(mod)
	}
}
