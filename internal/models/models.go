package models

// Laptop is a single inventory entry. IDs are opaque strings assigned by the
// storage backend at create time.
type Laptop struct {
	ID            string  `json:"id" bson:"_id,omitempty"`
	Brand         string  `json:"brand" bson:"brand"`
	Model         string  `json:"model" bson:"model"`
	Price         float64 `json:"price" bson:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Status        string  `json:"status" bson:"status"` // "in-stock", "sold", "sold-out", "offer"
	Processor     string  `json:"processor" bson:"processor"`
	RAM           string  `json:"ram" bson:"ram"`
	Storage       string  `json:"storage" bson:"storage"`
	Display       string  `json:"display" bson:"display"`
	Condition     string  `json:"condition" bson:"condition"`
	Image         string  `json:"image" bson:"image"`
}

// SoldOut reports whether the laptop should render as unavailable.
func (l Laptop) SoldOut() bool {
	return l.Status == "sold" || l.Status == "sold-out"
}

// Review is a customer testimonial. Approved is a pointer so that legacy
// records missing the field stay distinguishable from explicitly hidden ones.
type Review struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Role      string `json:"role" bson:"role"`
	Rating    int    `json:"rating" bson:"rating"`
	Text      string `json:"text" bson:"text"`
	Image     string `json:"image,omitempty" bson:"image,omitempty"`
	Returning bool   `json:"returning,omitempty" bson:"returning,omitempty"`
	Approved  *bool  `json:"approved,omitempty" bson:"approved,omitempty"`
	Date      string `json:"date" bson:"date"`
}

// Visible reports whether the review belongs in the public feed. Records
// created before the approval flow lack the field and remain visible; only an
// explicit false hides a review.
func (r Review) Visible() bool {
	return r.Approved == nil || *r.Approved
}

// Message is a contact form submission. Append-only from the public side.
type Message struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Mobile  string `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Message string `json:"message" bson:"message"`
	Date    string `json:"date" bson:"date"`
}

// User is a registered account. Password holds the bcrypt hash and must be
// persisted by the storage strategies, so it carries real tags; API responses
// are built from PublicUser and never serialize this struct.
type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Username  string `json:"username" bson:"username"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"password" bson:"password"`
	Role      string `json:"role" bson:"role"` // "user" or "admin"
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the sanitized shape returned to clients after login.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips the credential fields from a user record.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
