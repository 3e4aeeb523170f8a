package site

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// StatusBadge maps an inventory status to its card badge. Anything outside
// the known values renders as in stock (the default branch).
func StatusBadge(status string) string {
	switch status {
	case "sold", "sold-out":
		return "SOLD OUT"
	case "offer":
		return "SPECIAL OFFER"
	default:
		return "IN STOCK"
	}
}

// WhatsAppLink builds the outbound purchase link, its text templated from
// model and price.
func WhatsAppLink(number string, l models.Laptop) string {
	msg := fmt.Sprintf("Hi, I'm interested in the %s (₹%.0f).", l.Model, l.Price)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg)
}

const inventoryGridTmpl = `{{range .Laptops}}<div class="card">
  <span class="badge">{{badge .Status}}</span>
  <img src="{{.Image}}" alt="{{.Model}}">
  <h3>{{.Model}}</h3>
  <ul><li>{{.Processor}}</li><li>{{.RAM}} | {{.Storage}}</li></ul>
  {{if .SoldOut}}<span class="soldout">CURRENTLY OUT OF STOCK</span>
  {{else}}<span class="price">{{inr .Price}}</span>
  <a class="buy" href="{{waLink .}}" target="_blank">Buy Now</a>{{end}}
</div>
{{end}}`

const reviewGridTmpl = `{{range .Reviews}}<div class="review">
  {{if .Returning}}<span class="returning">Returning Customer</span>{{end}}
  {{if .Image}}<img src="{{.Image}}" alt="{{.Name}}">{{end}}
  <h4>{{.Name}}</h4>
  <p class="role">{{.Role}}</p>
  <div class="stars">{{stars .Rating}}</div>
  <p class="text">"{{.Text}}"</p>
</div>
{{end}}`

const modalTmpl = `<div class="modal">
  <img src="{{.Image}}" alt="{{.Model}}">
  <h2>{{.Model}}</h2>
  <span class="availability">{{if .SoldOut}}Sold Out{{else}}Available in Stock{{end}}</span>
  <dl>
    <dt>Processor</dt><dd>{{.Processor}}</dd>
    <dt>RAM</dt><dd>{{.RAM}}</dd>
    <dt>Storage</dt><dd>{{.Storage}}</dd>
    <dt>Display</dt><dd>{{.Display}}</dd>
  </dl>
  <span class="price">{{inr .Price}}</span>
  {{if not .SoldOut}}<a class="buy" href="{{waLink .}}" target="_blank">Buy Now</a>{{end}}
</div>`

// Renderer turns cached state into HTML fragments.
type Renderer struct {
	whatsAppNumber string
	inventory      *template.Template
	reviews        *template.Template
	modal          *template.Template
}

func NewRenderer(whatsAppNumber string) *Renderer {
	r := &Renderer{whatsAppNumber: whatsAppNumber}
	funcs := template.FuncMap{
		"badge": StatusBadge,
		"inr": func(price float64) string {
			return fmt.Sprintf("₹%.0f", price)
		},
		"waLink": func(l models.Laptop) string {
			return WhatsAppLink(r.whatsAppNumber, l)
		},
		"stars": func(rating int) string {
			if rating < 0 {
				rating = 0
			}
			if rating > 5 {
				rating = 5
			}
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
	}
	r.inventory = template.Must(template.New("inventory").Funcs(funcs).Parse(inventoryGridTmpl))
	r.reviews = template.Must(template.New("reviews").Funcs(funcs).Parse(reviewGridTmpl))
	r.modal = template.Must(template.New("modal").Funcs(funcs).Parse(modalTmpl))
	return r
}

// InventoryGrid renders one card per cached laptop.
func (r *Renderer) InventoryGrid(app *App) (string, error) {
	var sb strings.Builder
	err := r.inventory.Execute(&sb, map[string]any{"Laptops": app.Laptops()})
	return sb.String(), err
}

// ReviewGrid renders the public feed from the cache, re-filtering to visible
// reviews even though the API should already moderate.
func (r *Renderer) ReviewGrid(app *App) (string, error) {
	var sb strings.Builder
	err := r.reviews.Execute(&sb, map[string]any{"Reviews": app.VisibleReviews()})
	return sb.String(), err
}

// Modal renders the detail view for the currently open laptop; an empty
// string when no modal is showing.
func (r *Renderer) Modal(app *App) (string, error) {
	state, laptop := app.Modal()
	if laptop == nil || state == ModalClosed {
		return "", nil
	}
	var sb strings.Builder
	err := r.modal.Execute(&sb, laptop)
	return sb.String(), err
}
