package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"rentdesk/shared/failure"
	"rentdesk/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	UnitID   string  `json:"unit_id"   validate:"required"`
	Email    string  `json:"email"     validate:"omitempty,email"`
	CheckIn  string  `json:"check_in"  validate:"required,isodate"`
	Price    float64 `json:"price"     validate:"gte=0"`
	Category string  `json:"category"  validate:"omitempty,oneof=Airbnb Booking Direct"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingRequest
		wantMsg string
	}{
		{
			name: "valid struct",
			data: bookingRequest{UnitID: "u-1", Email: "ann@x.com", CheckIn: "2025-10-02", Price: 100},
		},
		{
			name:    "missing required field uses json name",
			data:    bookingRequest{CheckIn: "2025-10-02"},
			wantMsg: "unit_id is required",
		},
		{
			name:    "invalid email",
			data:    bookingRequest{UnitID: "u-1", Email: "invalid", CheckIn: "2025-10-02"},
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "invalid iso date",
			data:    bookingRequest{UnitID: "u-1", CheckIn: "02/10/2025"},
			wantMsg: "check_in must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "negative price",
			data:    bookingRequest{UnitID: "u-1", CheckIn: "2025-10-02", Price: -1},
			wantMsg: "price must be greater than or equal to 0",
		},
		{
			name:    "invalid oneof",
			data:    bookingRequest{UnitID: "u-1", CheckIn: "2025-10-02", Category: "Phone"},
			wantMsg: "category must be one of Airbnb Booking Direct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, failure.Is(err, http.StatusBadRequest))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", wantErr: true},
		{name: "iso date", field: "2025-02-28", tag: "isodate"},
		{name: "impossible date", field: "2025-02-30", tag: "isodate", wantErr: true},
		{name: "message within limit", field: strings.Repeat("a", 500), tag: "max=500"},
		{name: "message over limit", field: strings.Repeat("a", 501), tag: "max=500", wantErr: true},
		{name: "empty tag on zero value", field: "", tag: "empty"},
		{name: "empty tag on value", field: "x", tag: "empty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type attachmentRequest struct {
	Small *multipart.FileHeader `json:"small" validate:"omitempty,maxfilesize=10"`
	Tiny  *multipart.FileHeader `json:"tiny"  validate:"omitempty,maxfilesize=1"`
	Image *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpeg"`
	PDF   *multipart.FileHeader `json:"pdf"   validate:"omitempty,mimetypes=application/pdf"`
}

func TestValidateFileHeader(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "flyer.png",
		Size:     2 * 1024 * 1024,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}

	assert.NoError(t, validator.ValidateStruct(&attachmentRequest{Small: header, Image: header}))

	err := validator.ValidateStruct(&attachmentRequest{Tiny: header})
	require.Error(t, err)
	assert.Equal(t, "tiny must not exceed 1 MB", err.Error())

	err = validator.ValidateStruct(&attachmentRequest{PDF: header})
	require.Error(t, err)
	assert.Equal(t, "pdf must be one of application/pdf", err.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{name: "valid JSON", jsonBody: `{"unit_id":"u-1","check_in":"2025-10-02","price":300}`},
		{name: "invalid field", jsonBody: `{"unit_id":"u-1","check_in":"tomorrow"}`, wantErr: true},
		{name: "malformed JSON", jsonBody: `{"unit_id":}`, wantErr: true},
		{name: "empty JSON", jsonBody: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
