package dto

import (
	"rentdesk/internal/domains/unit/model"
	"rentdesk/shared"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

type WeekdayPrices struct {
	Sunday    float64 `json:"sunday"    validate:"gte=0"`
	Monday    float64 `json:"monday"    validate:"gte=0"`
	Tuesday   float64 `json:"tuesday"   validate:"gte=0"`
	Wednesday float64 `json:"wednesday" validate:"gte=0"`
	Thursday  float64 `json:"thursday"  validate:"gte=0"`
	Friday    float64 `json:"friday"    validate:"gte=0"`
	Saturday  float64 `json:"saturday"  validate:"gte=0"`
}

type SpecialDate struct {
	Date  string  `json:"date"  validate:"required,isodate"`
	Price float64 `json:"price" validate:"gte=0"`
}

type Pricing struct {
	BaseRate      float64       `json:"base_rate"      validate:"gte=0"`
	WeekdayPrices WeekdayPrices `json:"weekday_prices"`
	SpecialDates  []SpecialDate `json:"special_dates"  validate:"omitempty,dive"`
}

type CreateUnitRequest struct {
	Name               string  `json:"name"                validate:"required,max=255"`
	GroupID            string  `json:"group_id"            validate:"required,uuid"`
	Type               string  `json:"type"                validate:"required,oneof=Chalets Apartments 'Hotel Rooms'"`
	Status             string  `json:"status"              validate:"omitempty,oneof=Active Inactive"`
	ShortDescription   string  `json:"short_description"   validate:"omitempty,max=500"`
	LongDescription    string  `json:"long_description"    validate:"omitempty,max=5000"`
	Area               float64 `json:"area"                validate:"gte=0"`
	MaxGuests          int     `json:"max_guests"          validate:"gte=0"`
	ParkingAvailable   bool    `json:"parking_available"`
	CheckInHour        string  `json:"check_in_hour"       validate:"omitempty,max=16"`
	CheckOutHour       string  `json:"check_out_hour"      validate:"omitempty,max=16"`
	CancellationPolicy string  `json:"cancellation_policy" validate:"omitempty,max=2000"`
	Pricing            Pricing `json:"pricing"`
}

func (c *CreateUnitRequest) ToModel(user string) model.Unit {
	status := c.Status
	if status == "" {
		status = model.StatusActive
	}

	special := make(model.SpecialDates, 0, len(c.Pricing.SpecialDates))
	for _, entry := range c.Pricing.SpecialDates {
		special = append(special, model.SpecialDate{Date: entry.Date, Price: entry.Price})
	}

	return model.Unit{
		ID:                 shared.NewID(),
		Name:               c.Name,
		GroupID:            c.GroupID,
		Type:               c.Type,
		Status:             status,
		ShortDescription:   c.ShortDescription,
		LongDescription:    c.LongDescription,
		Area:               c.Area,
		MaxGuests:          c.MaxGuests,
		ParkingAvailable:   c.ParkingAvailable,
		CheckInHour:        c.CheckInHour,
		CheckOutHour:       c.CheckOutHour,
		CancellationPolicy: c.CancellationPolicy,
		BaseRate:           c.Pricing.BaseRate,
		SundayPrice:        c.Pricing.WeekdayPrices.Sunday,
		MondayPrice:        c.Pricing.WeekdayPrices.Monday,
		TuesdayPrice:       c.Pricing.WeekdayPrices.Tuesday,
		WednesdayPrice:     c.Pricing.WeekdayPrices.Wednesday,
		ThursdayPrice:      c.Pricing.WeekdayPrices.Thursday,
		FridayPrice:        c.Pricing.WeekdayPrices.Friday,
		SaturdayPrice:      c.Pricing.WeekdayPrices.Saturday,
		SpecialDates:       special,
		Metadata:           gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateUnitRequest leaves absent fields untouched. Prices are pointers so they can be set to zero.
type UpdateUnitRequest struct {
	Name               string   `db:"name"                json:"name"                validate:"omitempty,max=255"`
	GroupID            string   `db:"group_id"            json:"group_id"            validate:"omitempty,uuid"`
	Type               string   `db:"unit_type"           json:"type"                validate:"omitempty,oneof=Chalets Apartments 'Hotel Rooms'"`
	Status             string   `db:"status"              json:"status"              validate:"omitempty,oneof=Active Inactive"`
	ShortDescription   string   `db:"short_description"   json:"short_description"   validate:"omitempty,max=500"`
	LongDescription    string   `db:"long_description"    json:"long_description"    validate:"omitempty,max=5000"`
	Area               *float64 `db:"area"                json:"area"                validate:"omitempty,gte=0"`
	MaxGuests          *int     `db:"max_guests"          json:"max_guests"          validate:"omitempty,gte=0"`
	ParkingAvailable   *bool    `db:"parking_available"   json:"parking_available"`
	CheckInHour        string   `db:"check_in_hour"       json:"check_in_hour"       validate:"omitempty,max=16"`
	CheckOutHour       string   `db:"check_out_hour"      json:"check_out_hour"      validate:"omitempty,max=16"`
	CancellationPolicy string   `db:"cancellation_policy" json:"cancellation_policy" validate:"omitempty,max=2000"`
	BaseRate           *float64 `db:"base_rate"           json:"base_rate"           validate:"omitempty,gte=0"`
	SundayPrice        *float64 `db:"sunday_price"        json:"sunday_price"        validate:"omitempty,gte=0"`
	MondayPrice        *float64 `db:"monday_price"        json:"monday_price"        validate:"omitempty,gte=0"`
	TuesdayPrice       *float64 `db:"tuesday_price"       json:"tuesday_price"       validate:"omitempty,gte=0"`
	WednesdayPrice     *float64 `db:"wednesday_price"     json:"wednesday_price"     validate:"omitempty,gte=0"`
	ThursdayPrice      *float64 `db:"thursday_price"      json:"thursday_price"      validate:"omitempty,gte=0"`
	FridayPrice        *float64 `db:"friday_price"        json:"friday_price"        validate:"omitempty,gte=0"`
	SaturdayPrice      *float64 `db:"saturday_price"      json:"saturday_price"      validate:"omitempty,gte=0"`
}

// SpecialPriceRequest pins the price of one date. A null price clears the pin.
type SpecialPriceRequest struct {
	Date  string   `json:"date"  validate:"required,isodate"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

type UnitResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	GroupID            string  `json:"group_id"`
	Type               string  `json:"type"`
	Status             string  `json:"status"`
	ShortDescription   string  `json:"short_description"`
	LongDescription    string  `json:"long_description"`
	Area               float64 `json:"area"`
	MaxGuests          int     `json:"max_guests"`
	ParkingAvailable   bool    `json:"parking_available"`
	CheckInHour        string  `json:"check_in_hour"`
	CheckOutHour       string  `json:"check_out_hour"`
	CancellationPolicy string  `json:"cancellation_policy"`
	Pricing            Pricing `json:"pricing"`
	gDto.Metadata
}

func (r *UnitResponse) FromModel(model model.Unit) {
	r.ID = model.ID
	r.Name = model.Name
	r.GroupID = model.GroupID
	r.Type = model.Type
	r.Status = model.Status
	r.ShortDescription = model.ShortDescription
	r.LongDescription = model.LongDescription
	r.Area = model.Area
	r.MaxGuests = model.MaxGuests
	r.ParkingAvailable = model.ParkingAvailable
	r.CheckInHour = model.CheckInHour
	r.CheckOutHour = model.CheckOutHour
	r.CancellationPolicy = model.CancellationPolicy
	r.Pricing = Pricing{
		BaseRate: model.BaseRate,
		WeekdayPrices: WeekdayPrices{
			Sunday:    model.SundayPrice,
			Monday:    model.MondayPrice,
			Tuesday:   model.TuesdayPrice,
			Wednesday: model.WednesdayPrice,
			Thursday:  model.ThursdayPrice,
			Friday:    model.FridayPrice,
			Saturday:  model.SaturdayPrice,
		},
		SpecialDates: make([]SpecialDate, len(model.SpecialDates)),
	}

	for i, entry := range model.SpecialDates {
		r.Pricing.SpecialDates[i] = SpecialDate{Date: entry.Date, Price: entry.Price}
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUnitsResponse struct {
	Units     []UnitResponse `json:"units"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUnitsResponse) FromModels(models []model.Unit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Units = make([]UnitResponse, len(models))
	for i, mod := range models {
		r.Units[i].FromModel(mod)
	}
}
