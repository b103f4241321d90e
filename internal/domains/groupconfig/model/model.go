// Package model holds the per-group settings of the AI booking agent and the public
// website. Both are keyed by the group scope, so "all" carries its own settings.
package model

import (
	"time"

	"rentdesk/shared/constant"
	"rentdesk/shared/model"

	"github.com/lib/pq"
)

const (
	AITableName       = "ai_configs"
	AIEntityName      = "ai_config"
	WebsiteTableName  = "website_configs"
	WebsiteEntityName = "website_config"

	FieldScopeKey = "scope_key"

	FieldMaxConversations = "max_conversations"
	FieldBookingMethod    = "booking_method"
	FieldDiscountEnabled  = "discount_enabled"
	FieldDiscountAmount   = "discount_amount"
	FieldCouponCode       = "coupon_code"
	FieldWelcomeMessage   = "welcome_message"
	FieldReminders        = "reminders"
	FieldCustomRoles      = "custom_roles"

	FieldHomePagePicture    = "home_page_picture"
	FieldThemeColor         = "theme_color"
	FieldWebsiteTitle       = "website_title"
	FieldWebsiteDescription = "website_description"
)

const (
	BookingMethodFull        = "AI Agent Full Booking"
	BookingMethodWebsiteOnly = "Website Only Booking"
)

type AIConfig struct {
	ScopeKey         string         `db:"scope_key"`
	MaxConversations int            `db:"max_conversations"`
	BookingMethod    string         `db:"booking_method"`
	DiscountEnabled  bool           `db:"discount_enabled"`
	DiscountAmount   float64        `db:"discount_amount"`
	CouponCode       string         `db:"coupon_code"`
	WelcomeMessage   string         `db:"welcome_message"`
	Reminders        pq.StringArray `db:"reminders"`
	CustomRoles      pq.StringArray `db:"custom_roles"`
	model.Metadata
}

// Columns is every settable column with its value, for replacing a stored config.
func (c AIConfig) Columns(modifiedBy string, now time.Time) map[string]any {
	return map[string]any{
		FieldMaxConversations:    c.MaxConversations,
		FieldBookingMethod:       c.BookingMethod,
		FieldDiscountEnabled:     c.DiscountEnabled,
		FieldDiscountAmount:      c.DiscountAmount,
		FieldCouponCode:          c.CouponCode,
		FieldWelcomeMessage:      c.WelcomeMessage,
		FieldReminders:           c.Reminders,
		FieldCustomRoles:         c.CustomRoles,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: modifiedBy,
	}
}

type WebsiteConfig struct {
	ScopeKey           string `db:"scope_key"`
	HomePagePicture    string `db:"home_page_picture"`
	ThemeColor         string `db:"theme_color"`
	WebsiteTitle       string `db:"website_title"`
	WebsiteDescription string `db:"website_description"`
	model.Metadata
}

func (c WebsiteConfig) Columns(modifiedBy string, now time.Time) map[string]any {
	return map[string]any{
		FieldHomePagePicture:     c.HomePagePicture,
		FieldThemeColor:          c.ThemeColor,
		FieldWebsiteTitle:        c.WebsiteTitle,
		FieldWebsiteDescription:  c.WebsiteDescription,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: modifiedBy,
	}
}
