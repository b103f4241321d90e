package dto

import (
	"net/http"
	"strings"
	"time"

	"rentdesk/internal/domains/booking/model"
	"rentdesk/internal/engine"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"
)

const (
	RequestParamUnitID = "unit_id"
	RequestParamStatus = "status"
)

type CreateBookingRequest struct {
	ClientName    string   `json:"client_name"    validate:"required,max=255"`
	ClientEmail   string   `json:"client_email"   validate:"omitempty,email,max=255"`
	ClientPhone   string   `json:"client_phone"   validate:"required,max=32"`
	UnitID        string   `json:"unit_id"        validate:"required,uuid"`
	CheckIn       string   `json:"check_in"       validate:"required,isodate"`
	CheckOut      string   `json:"check_out"      validate:"required,isodate"`
	PaidAmount    *float64 `json:"paid_amount"    validate:"omitempty,gte=0"`
	BookingSource *string  `json:"booking_source" validate:"omitempty,oneof=Website Phone Walk-in Agent"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof='Credit Card' Cash 'Bank Transfer'"`
	Notes         *string  `json:"notes"          validate:"omitempty,max=2000"`
}

// Stay parses the requested nights. ok is false unless check-out is after check-in.
func (c *CreateBookingRequest) Stay() (daterange.Range, bool) {
	return parseStay(c.CheckIn, c.CheckOut)
}

// ToInput prepares the form for the linkage rules, priced at price.
func (c *CreateBookingRequest) ToInput(stay daterange.Range, price float64) engine.BookingInput {
	return engine.BookingInput{
		ClientName:    c.ClientName,
		ClientEmail:   c.ClientEmail,
		ClientPhone:   c.ClientPhone,
		UnitID:        c.UnitID,
		CheckIn:       stay.Start,
		CheckOut:      stay.End,
		Price:         price,
		PaidAmount:    c.PaidAmount,
		BookingSource: trimmed(c.BookingSource),
		PaymentMethod: trimmed(c.PaymentMethod),
		Notes:         trimmed(c.Notes),
	}
}

type QuoteRequest struct {
	UnitID   string `json:"unit_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,isodate"`
	CheckOut string `json:"check_out" validate:"required,isodate"`
}

func (q *QuoteRequest) Stay() (daterange.Range, bool) {
	return parseStay(q.CheckIn, q.CheckOut)
}

type NightResponse struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Tier  string  `json:"tier"`
}

type QuoteResponse struct {
	UnitID    string          `json:"unit_id"`
	CheckIn   string          `json:"check_in"`
	CheckOut  string          `json:"check_out"`
	Nights    []NightResponse `json:"nights"`
	Total     float64         `json:"total"`
	Currency  string          `json:"currency"`
	Available bool            `json:"available"`
}

func (r *QuoteResponse) FromQuote(unitID string, stay daterange.Range, quote engine.Quote) {
	r.UnitID = unitID
	r.CheckIn = daterange.Format(stay.Start)
	r.CheckOut = daterange.Format(stay.End)
	r.Total = quote.Total

	r.Nights = make([]NightResponse, len(quote.Nights))
	for i, night := range quote.Nights {
		r.Nights[i] = NightResponse{Date: daterange.Format(night.Date), Price: night.Price, Tier: string(night.Tier)}
	}
}

// ListFilter narrows the booking list.
type ListFilter struct {
	Scope  scope.GroupScope
	UnitID string
	Status string
	From   *time.Time
	To     *time.Time
}

func (f *ListFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Scope = scope.FromRequest(r)
	f.UnitID = strings.TrimSpace(query.Get(RequestParamUnitID))
	f.Status = strings.TrimSpace(query.Get(RequestParamStatus))

	for param, target := range map[string]**time.Time{constant.RequestParamFrom: &f.From, constant.RequestParamTo: &f.To} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}

		parsed, err := daterange.Parse(raw)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		*target = &parsed
	}

	return nil
}

// Filter renders everything but the group scope, which needs the unit list.
func (f *ListFilter) Filter() gDto.FilterGroup {
	filters := []any{}

	if f.UnitID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldUnitID, Value: f.UnitID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.From != nil {
		filters = append(filters, gDto.Filter{
			Field: model.FieldCheckOut, ArgName: "list_from", Value: daterange.Day(*f.From),
			Operator: gDto.FilterOperatorGreater, Table: model.TableName,
		})
	}

	if f.To != nil {
		filters = append(filters, gDto.Filter{
			Field: model.FieldCheckIn, ArgName: "list_to", Value: daterange.Day(*f.To),
			Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

type BookingResponse struct {
	ID            string   `json:"id"`
	ClientID      string   `json:"client_id"`
	ClientName    string   `json:"client_name"`
	UnitID        string   `json:"unit_id"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	Nights        int      `json:"nights"`
	Status        string   `json:"status"`
	Price         float64  `json:"price"`
	PaidAmount    *float64 `json:"paid_amount,omitempty"`
	PaymentStatus string   `json:"payment_status"`
	BookingSource *string  `json:"booking_source,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Closure       bool     `json:"closure"`
	Cancellable   bool     `json:"cancellable"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.ClientName = model.ClientName
	r.UnitID = model.UnitID
	r.CheckIn = daterange.Format(model.CheckIn)
	r.CheckOut = daterange.Format(model.CheckOut)
	r.Nights = model.Stay().Days()
	r.Status = model.Status
	r.Price = model.Price
	r.PaidAmount = model.PaidAmount
	r.PaymentStatus = engine.PaymentStatus(model.PaidAmount, model.Price)
	r.BookingSource = model.BookingSource
	r.PaymentMethod = model.PaymentMethod
	r.Notes = model.Notes
	r.Closure = model.IsClosure()
	r.Cancellable = engine.Cancellable(model)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func parseStay(checkIn, checkOut string) (daterange.Range, bool) {
	start, err := daterange.Parse(checkIn)
	if err != nil {
		return daterange.Range{}, false
	}

	end, err := daterange.Parse(checkOut)
	if err != nil {
		return daterange.Range{}, false
	}

	stay := daterange.New(start, end)

	return stay, stay.Valid()
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}

	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}

	return &v
}
