package dto_test

import (
	"strings"
	"testing"

	"rentdesk/internal/domains/groupconfig/model/dto"
	"rentdesk/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestAIConfigRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "full booking", body: `{"booking_method":"AI Agent Full Booking","max_conversations":20}`},
		{name: "website only", body: `{"booking_method":"Website Only Booking","reminders":["Bring ID"]}`},
		{name: "unknown method", body: `{"booking_method":"Phone"}`, wantErr: true},
		{name: "missing method", body: `{"max_conversations":20}`, wantErr: true},
		{name: "negative discount", body: `{"booking_method":"Website Only Booking","discount_amount":-5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.AIConfigRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWebsiteConfigRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "full", body: `{"home_page_picture":"https://cdn.example.com/home.jpg","theme_color":"#f97316","website_title":"Palm"}`},
		{name: "empty", body: `{}`},
		{name: "bad color", body: `{"theme_color":"orange"}`, wantErr: true},
		{name: "picture not a url", body: `{"home_page_picture":"home.jpg"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.WebsiteConfigRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
