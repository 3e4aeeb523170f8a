package handlers

import (
	"encoding/gob"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"
	"golang.org/x/crypto/bcrypt"

	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(FlashMessage{})
}

// FlashMessage structure
type FlashMessage struct {
	Type    string
	Message string
}

// GetFlash retrieves flash messages from the session
func GetFlash(session *sessions.Session) []FlashMessage {
	flashes := session.Flashes()
	var messages []FlashMessage
	for _, f := range flashes {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// AdminHandler serves the session-guarded admin panel. The public JSON API is
// deliberately trust-based; every administrative mutation also goes through
// here, behind a session and a role check.
type AdminHandler struct {
	Store        storage.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.Store.Users().FindByEmail(r.Context(), email)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid email or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if user.Role != "admin" {
		session.AddFlash(FlashMessage{Type: "error", Message: "This account has no admin access."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Admin login successful", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the caller holds an authenticated admin session.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// Dashboard shows the inventory, the moderation queue and the inbox.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	laptops, err := h.Store.Laptops().List(ctx)
	if err != nil {
		http.Error(w, "Error fetching laptops", http.StatusInternalServerError)
		return
	}
	reviews, err := h.Store.Reviews().List(ctx)
	if err != nil {
		http.Error(w, "Error fetching reviews", http.StatusInternalServerError)
		return
	}
	messages, err := h.Store.Messages().List(ctx)
	if err != nil {
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}

	var pending []models.Review
	for _, rv := range reviews {
		if !rv.Visible() {
			pending = append(pending, rv)
		}
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Laptops":        laptops,
		"Reviews":        reviews,
		"PendingReviews": pending,
		"Messages":       messages,
		"CsrfField":      csrf.TemplateField(r),
		"Flashes":        GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// CreateLaptop adds an inventory entry from the admin form. The image is
// either a remote URL or an uploaded file, which gets resized and stored
// under the upload dir.
func (h *AdminHandler) CreateLaptop(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid price."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	laptop := models.Laptop{
		Brand:     r.FormValue("brand"),
		Model:     r.FormValue("model"),
		Price:     price,
		Status:    r.FormValue("status"),
		Processor: r.FormValue("processor"),
		RAM:       r.FormValue("ram"),
		Storage:   r.FormValue("storage"),
		Display:   r.FormValue("display"),
		Condition: r.FormValue("condition"),
		Image:     r.FormValue("image_url"),
	}
	if laptop.Model == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Model is required."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if laptop.Status == "" {
		laptop.Status = "in-stock"
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		saved, err := h.saveImage(file, header.Filename)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		laptop.Image = saved
	}

	if _, err := h.Store.Laptops().Create(r.Context(), laptop); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving laptop."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Laptop added successfully!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// saveImage decodes, shrinks and stores an uploaded product photo, returning
// the public path.
func (h *AdminHandler) saveImage(file io.Reader, filename string) (string, error) {
	var img image.Image
	var err error
	switch filepath.Ext(filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format, only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image")
	}

	// Resize to max width 800px, preserve aspect ratio
	newImage := resize.Resize(800, 0, img, resize.Lanczos3)

	name := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join(h.UploadDir, name)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("error saving image file")
	}
	defer out.Close()

	if err := jpeg.Encode(out, newImage, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("error encoding image")
	}
	return "/" + filepath.ToSlash(uploadPath), nil
}

func (h *AdminHandler) DeleteLaptop(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "laptop", func(id string) error {
		return h.Store.Laptops().Delete(r.Context(), id)
	})
}

// ModerateReview flips a review's approval from the dashboard form.
func (h *AdminHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	approved := r.FormValue("approved") == "true"
	patch := models.ReviewPatch{Approved: &approved}
	if _, err := h.Store.Reviews().Update(r.Context(), r.FormValue("id"), patch); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating review."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Review status updated."})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "review", func(id string) error {
		return h.Store.Reviews().Delete(r.Context(), id)
	})
}

func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "message", func(id string) error {
		return h.Store.Messages().Delete(r.Context(), id)
	})
}

func (h *AdminHandler) deleteByID(w http.ResponseWriter, r *http.Request, what string, del func(string) error) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := del(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting " + what + "."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Deleted " + what + " successfully!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
