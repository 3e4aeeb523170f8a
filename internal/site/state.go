// Package site is the storefront's render/state layer: an explicit
// application state object holding the last-fetched collections, the detail
// modal state machine and the client-only compare selection, plus the
// HTML fragment rendering driven off that state.
package site

import (
	"context"
	"sync"
	"time"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// DataSource is what the app refreshes from; satisfied by client.Client.
type DataSource interface {
	FetchInventory(ctx context.Context) []models.Laptop
	FetchReviews(ctx context.Context) []models.Review
}

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpening
	ModalOpen
	ModalClosing
)

// App holds the cached collections and UI state. The cache has no authority:
// it is discarded and replaced wholesale on every Refresh, never patched from
// UI actions. The compare selection is client-only and never persisted.
type App struct {
	mu      sync.Mutex
	laptops []models.Laptop
	reviews []models.Review
	compare map[string]bool

	modal       ModalState
	modalLaptop *models.Laptop
	closeDelay  time.Duration
	closeTimer  *time.Timer
}

// NewApp creates an empty state object. closeDelay is how long the modal
// lingers in the closing state for its visual transition.
func NewApp(closeDelay time.Duration) *App {
	return &App{
		compare:    make(map[string]bool),
		closeDelay: closeDelay,
	}
}

// Refresh replaces both cached collections from the data service. A failed
// fetch yields empty slices, so the UI falls back to an empty-but-valid
// render instead of keeping stale state around.
func (a *App) Refresh(ctx context.Context, src DataSource) {
	laptops := src.FetchInventory(ctx)
	reviews := src.FetchReviews(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.laptops = laptops
	a.reviews = reviews
}

// Laptops returns a copy of the cached inventory.
func (a *App) Laptops() []models.Laptop {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Laptop, len(a.laptops))
	copy(out, a.laptops)
	return out
}

// Reviews returns a copy of the cached review collection, unfiltered.
func (a *App) Reviews() []models.Review {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Review, len(a.reviews))
	copy(out, a.reviews)
	return out
}

// VisibleReviews filters the cache to the public feed. The API is expected
// to moderate already; this re-filter is deliberate double-checking.
func (a *App) VisibleReviews() []models.Review {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.Review
	for _, r := range a.reviews {
		if r.Visible() {
			out = append(out, r)
		}
	}
	return out
}

// laptopByID looks a laptop up in the cache. Callers hold a.mu.
func (a *App) laptopByID(id string) *models.Laptop {
	for i := range a.laptops {
		if a.laptops[i].ID == id {
			l := a.laptops[i]
			return &l
		}
	}
	return nil
}

// OpenModal starts opening the detail view for the given id, looked up from
// the cache with no network round-trip. Unknown ids fail silently; opening
// is only possible from the closed state.
func (a *App) OpenModal(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.modal != ModalClosed {
		return false
	}
	laptop := a.laptopByID(id)
	if laptop == nil {
		return false
	}
	a.modalLaptop = laptop
	a.modal = ModalOpening
	return true
}

// ModalShown marks the opening transition finished (the fade-in completed).
func (a *App) ModalShown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.modal == ModalOpening {
		a.modal = ModalOpen
	}
}

// CloseModal starts the timed closing transition; after the close delay the
// modal reaches the closed state and the selection is dropped.
func (a *App) CloseModal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.modal != ModalOpen && a.modal != ModalOpening {
		return
	}
	a.modal = ModalClosing
	a.closeTimer = time.AfterFunc(a.closeDelay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.modal == ModalClosing {
			a.modal = ModalClosed
			a.modalLaptop = nil
		}
	})
}

// Modal reports the current modal state and the laptop it shows (nil when
// closed).
func (a *App) Modal() (ModalState, *models.Laptop) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modal, a.modalLaptop
}

// ToggleCompare flips a laptop in and out of the compare selection and
// reports whether it is now selected. Unknown ids are ignored.
func (a *App) ToggleCompare(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.laptopByID(id) == nil {
		return false
	}
	if a.compare[id] {
		delete(a.compare, id)
		return false
	}
	a.compare[id] = true
	return true
}

// Compared returns the laptops currently selected for comparison, in
// inventory order.
func (a *App) Compared() []models.Laptop {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.Laptop
	for _, l := range a.laptops {
		if a.compare[l.ID] {
			out = append(out, l)
		}
	}
	return out
}
