package site

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/israil64/laptop-galaxy/internal/models"
)

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"sold", "sold", "SOLD OUT"},
		{"sold-out", "sold-out", "SOLD OUT"},
		{"offer", "offer", "SPECIAL OFFER"},
		{"in-stock", "in-stock", "IN STOCK"},
		{"unknown value", "refurbished", "IN STOCK"},
		{"unset", "", "IN STOCK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusBadge(tt.status))
		})
	}
}

func TestWhatsAppLinkTemplatesModelAndPrice(t *testing.T) {
	link := WhatsAppLink("919876543210", models.Laptop{Model: "XPS 13", Price: 50000})
	assert.Contains(t, link, "https://wa.me/919876543210?text=")
	assert.Contains(t, link, "XPS+13")
	assert.NotContains(t, link, " ", "the message must be URL-encoded")
}

func TestInventoryGridRendersBadgesAndBuyLink(t *testing.T) {
	app := NewApp(time.Millisecond)
	app.Refresh(context.Background(), stubSource{
		laptops: []models.Laptop{
			{ID: "1", Model: "XPS", Price: 50000, Status: "in-stock", Processor: "i7"},
			{ID: "2", Model: "ThinkPad", Price: 30000, Status: "sold-out"},
			{ID: "3", Model: "MacBook", Price: 90000, Status: "offer"},
		},
	})

	html, err := NewRenderer("919876543210").InventoryGrid(app)
	require.NoError(t, err)

	assert.Contains(t, html, "IN STOCK")
	assert.Contains(t, html, "SOLD OUT")
	assert.Contains(t, html, "SPECIAL OFFER")
	assert.Contains(t, html, "https://wa.me/919876543210?text=")
	assert.Contains(t, html, "CURRENTLY OUT OF STOCK")
	assert.Contains(t, html, "i7")
}

func TestReviewGridSkipsHiddenReviews(t *testing.T) {
	app := NewApp(time.Millisecond)
	app.Refresh(context.Background(), stubSource{
		reviews: []models.Review{
			{ID: "1", Name: "Priya", Rating: 5, Text: "Great", Approved: boolPtr(true)},
			{ID: "2", Name: "Spam", Rating: 1, Text: "hidden", Approved: boolPtr(false)},
		},
	})

	html, err := NewRenderer("919876543210").ReviewGrid(app)
	require.NoError(t, err)
	assert.Contains(t, html, "Priya")
	assert.Contains(t, html, "★★★★★")
	assert.NotContains(t, html, "Spam")
}

func TestModalHidesPurchaseWhenSoldOut(t *testing.T) {
	app := NewApp(time.Millisecond)
	app.Refresh(context.Background(), stubSource{
		laptops: []models.Laptop{
			{ID: "1", Model: "XPS", Price: 50000, Status: "sold-out", Display: "13.4 FHD"},
		},
	})
	renderer := NewRenderer("919876543210")

	html, err := renderer.Modal(app)
	require.NoError(t, err)
	require.Empty(t, html, "no modal is rendered while closed")

	require.True(t, app.OpenModal("1"))
	html, err = renderer.Modal(app)
	require.NoError(t, err)
	assert.Contains(t, html, "Sold Out")
	assert.Contains(t, html, "13.4 FHD")
	assert.NotContains(t, html, "Buy Now")
}
