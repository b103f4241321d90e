package dto

import (
	"strings"

	"rentdesk/internal/domains/groupconfig/model"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/scope"
	"rentdesk/shared/timezone"

	"github.com/lib/pq"
)

// AIConfigRequest replaces a group's AI agent settings. Disabling the discount drops the
// amount and coupon.
type AIConfigRequest struct {
	MaxConversations int      `json:"max_conversations" validate:"gte=0,lte=10000"`
	BookingMethod    string   `json:"booking_method"    validate:"required,oneof='AI Agent Full Booking' 'Website Only Booking'"`
	DiscountEnabled  bool     `json:"discount_enabled"`
	DiscountAmount   float64  `json:"discount_amount"   validate:"gte=0"`
	CouponCode       string   `json:"coupon_code"       validate:"omitempty,max=64"`
	WelcomeMessage   string   `json:"welcome_message"   validate:"omitempty,max=2000"`
	Reminders        []string `json:"reminders"         validate:"omitempty,max=10,dive,max=500"`
	CustomRoles      []string `json:"custom_roles"      validate:"omitempty,max=20,dive,max=500"`
}

func (c *AIConfigRequest) ToModel(key scope.GroupScope, user string) model.AIConfig {
	config := model.AIConfig{
		ScopeKey:         key.String(),
		MaxConversations: c.MaxConversations,
		BookingMethod:    c.BookingMethod,
		DiscountEnabled:  c.DiscountEnabled,
		WelcomeMessage:   strings.TrimSpace(c.WelcomeMessage),
		Reminders:        nonBlank(c.Reminders),
		CustomRoles:      nonBlank(c.CustomRoles),
		Metadata:         gModel.NewMetadata(user, timezone.Now()),
	}

	if c.DiscountEnabled {
		config.DiscountAmount = c.DiscountAmount
		config.CouponCode = strings.TrimSpace(c.CouponCode)
	}

	return config
}

func nonBlank(values []string) pq.StringArray {
	out := pq.StringArray{}

	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}

	return out
}

type AIConfigResponse struct {
	GroupID          string   `json:"group_id"`
	MaxConversations int      `json:"max_conversations"`
	BookingMethod    string   `json:"booking_method"`
	DiscountEnabled  bool     `json:"discount_enabled"`
	DiscountAmount   float64  `json:"discount_amount"`
	CouponCode       string   `json:"coupon_code"`
	WelcomeMessage   string   `json:"welcome_message"`
	Reminders        []string `json:"reminders"`
	CustomRoles      []string `json:"custom_roles"`
	gDto.Metadata
}

func (r *AIConfigResponse) FromModel(model model.AIConfig) {
	r.GroupID = model.ScopeKey
	r.MaxConversations = model.MaxConversations
	r.BookingMethod = model.BookingMethod
	r.DiscountEnabled = model.DiscountEnabled
	r.DiscountAmount = model.DiscountAmount
	r.CouponCode = model.CouponCode
	r.WelcomeMessage = model.WelcomeMessage
	r.Reminders = append([]string{}, model.Reminders...)
	r.CustomRoles = append([]string{}, model.CustomRoles...)
	r.Metadata.FromModel(model.Metadata)
}

type WebsiteConfigRequest struct {
	HomePagePicture    string `json:"home_page_picture"   validate:"omitempty,url,max=2048"`
	ThemeColor         string `json:"theme_color"         validate:"omitempty,hexcolor"`
	WebsiteTitle       string `json:"website_title"       validate:"omitempty,max=255"`
	WebsiteDescription string `json:"website_description" validate:"omitempty,max=2000"`
}

func (c *WebsiteConfigRequest) ToModel(key scope.GroupScope, user string) model.WebsiteConfig {
	return model.WebsiteConfig{
		ScopeKey:           key.String(),
		HomePagePicture:    c.HomePagePicture,
		ThemeColor:         strings.ToLower(c.ThemeColor),
		WebsiteTitle:       strings.TrimSpace(c.WebsiteTitle),
		WebsiteDescription: strings.TrimSpace(c.WebsiteDescription),
		Metadata:           gModel.NewMetadata(user, timezone.Now()),
	}
}

type WebsiteConfigResponse struct {
	GroupID            string `json:"group_id"`
	HomePagePicture    string `json:"home_page_picture"`
	ThemeColor         string `json:"theme_color"`
	WebsiteTitle       string `json:"website_title"`
	WebsiteDescription string `json:"website_description"`
	gDto.Metadata
}

func (r *WebsiteConfigResponse) FromModel(model model.WebsiteConfig) {
	r.GroupID = model.ScopeKey
	r.HomePagePicture = model.HomePagePicture
	r.ThemeColor = model.ThemeColor
	r.WebsiteTitle = model.WebsiteTitle
	r.WebsiteDescription = model.WebsiteDescription
	r.Metadata.FromModel(model.Metadata)
}

// SaveResponse tells whether the scope had no settings before.
type SaveResponse struct {
	GroupID string `json:"group_id"`
	Created bool   `json:"created"`
}
