package model

import "rentdesk/shared/model"

const (
	TableName  = "unit_groups"
	EntityName = "group"

	FieldID                   = "id"
	FieldName                 = "name"
	FieldType                 = "group_type"
	FieldColor                = "color"
	FieldCRNumber             = "cr_number"
	FieldTourismLicenseNumber = "tourism_license_number"
)

type Group struct {
	ID                   string `db:"id"`
	Name                 string `db:"name"`
	Type                 string `db:"group_type"`
	Color                string `db:"color"`
	CRNumber             string `db:"cr_number"`
	TourismLicenseNumber string `db:"tourism_license_number"`
	LocationDescription  string `db:"location_description"`
	GoogleMapsLocation   string `db:"google_maps_location"`
	PhoneNumber          string `db:"phone_number"`
	Instagram            string `db:"social_instagram"`
	TikTok               string `db:"social_tiktok"`
	Snapchat             string `db:"social_snapchat"`
	Facebook             string `db:"social_facebook"`
	BankName             string `db:"bank_name"`
	AccountIBAN          string `db:"account_iban"`
	AccountName          string `db:"account_name"`
	model.Metadata
}
