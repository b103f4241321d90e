package s3_test

import (
	"testing"

	"rentdesk/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/campaigns/a.png", s3.PublicURL("https://cdn.example.com/", "/campaigns/a.png"))
	assert.Equal(t, "https://cdn.example.com/campaigns/a.png", s3.PublicURL("https://cdn.example.com", "campaigns/a.png"))
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		url    string
		want   string
	}{
		{name: "inside domain", domain: "https://cdn.example.com", url: "https://cdn.example.com/campaigns/a.png", want: "campaigns/a.png"},
		{name: "trailing slash domain", domain: "https://cdn.example.com/", url: "https://cdn.example.com/campaigns/a.png", want: "campaigns/a.png"},
		{name: "foreign domain", domain: "https://cdn.example.com", url: "https://other.example.com/campaigns/a.png", want: ""},
		{name: "empty url", domain: "https://cdn.example.com", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectKey(tt.domain, tt.url))
		})
	}
}
