package models

// Patch types carry partial updates. A nil field means "leave unchanged"; the
// HTTP layer decodes them with DisallowUnknownFields so stray keys are
// rejected instead of silently merged.

type LaptopPatch struct {
	Brand         *string  `json:"brand,omitempty"`
	Model         *string  `json:"model,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Processor     *string  `json:"processor,omitempty"`
	RAM           *string  `json:"ram,omitempty"`
	Storage       *string  `json:"storage,omitempty"`
	Display       *string  `json:"display,omitempty"`
	Condition     *string  `json:"condition,omitempty"`
	Image         *string  `json:"image,omitempty"`
}

// Apply overlays the set fields of the patch onto the laptop.
func (p LaptopPatch) Apply(l *Laptop) {
	if p.Brand != nil {
		l.Brand = *p.Brand
	}
	if p.Model != nil {
		l.Model = *p.Model
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		l.OriginalPrice = *p.OriginalPrice
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Processor != nil {
		l.Processor = *p.Processor
	}
	if p.RAM != nil {
		l.RAM = *p.RAM
	}
	if p.Storage != nil {
		l.Storage = *p.Storage
	}
	if p.Display != nil {
		l.Display = *p.Display
	}
	if p.Condition != nil {
		l.Condition = *p.Condition
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
}

// Fields returns the set keys as a flat map, keyed by the persisted field
// names. Used by the document-store backends to build partial updates.
func (p LaptopPatch) Fields() map[string]any {
	m := map[string]any{}
	if p.Brand != nil {
		m["brand"] = *p.Brand
	}
	if p.Model != nil {
		m["model"] = *p.Model
	}
	if p.Price != nil {
		m["price"] = *p.Price
	}
	if p.OriginalPrice != nil {
		m["originalPrice"] = *p.OriginalPrice
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.Processor != nil {
		m["processor"] = *p.Processor
	}
	if p.RAM != nil {
		m["ram"] = *p.RAM
	}
	if p.Storage != nil {
		m["storage"] = *p.Storage
	}
	if p.Display != nil {
		m["display"] = *p.Display
	}
	if p.Condition != nil {
		m["condition"] = *p.Condition
	}
	if p.Image != nil {
		m["image"] = *p.Image
	}
	return m
}

// ReviewPatch is deliberately narrow: the only thing an update may change is
// the moderation state.
type ReviewPatch struct {
	Approved *bool `json:"approved"`
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Approved != nil {
		v := *p.Approved
		r.Approved = &v
	}
}

func (p ReviewPatch) Fields() map[string]any {
	m := map[string]any{}
	if p.Approved != nil {
		m["approved"] = *p.Approved
	}
	return m
}
