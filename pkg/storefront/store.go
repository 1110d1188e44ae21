package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrFetchSuperseded is returned by Fetch when a newer fetch was issued
// before this one resolved; the stale result is discarded.
var ErrFetchSuperseded = errors.New("fetch superseded by a newer request")

// Store owns the storefront state: the product list from the last committed
// fetch, the cart, and the active category filter. It replaces the browser
// client's module-level globals with an explicit container.
type Store struct {
	client   *Client
	notifier *Notifier

	mu            sync.Mutex
	products      []Product
	cart          []CartLine
	currentFilter string
	loading       bool
	// fetchToken identifies the most recently issued fetch; only that fetch
	// may commit its result.
	fetchToken string
}

// NewStore creates a Store backed by the given catalog client.
func NewStore(client *Client) *Store {
	return &Store{
		client:   client,
		notifier: NewNotifier(DefaultNotificationTTL),
	}
}

// Notifier exposes the transient notification state.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

// Fetch lists products from the catalog service and, on success, replaces
// the stored product list and returns the rendered grid. On failure it
// returns the error panel view alongside the error. Either way the loading
// indicator is cleared before returning, unless a newer fetch owns it.
func (s *Store) Fetch(ctx context.Context, category, search string) (View, error) {
	token := uuid.NewString()

	s.mu.Lock()
	s.fetchToken = token
	s.loading = true
	if category != "" {
		s.currentFilter = category
	}
	s.mu.Unlock()

	products, err := s.client.FetchProducts(ctx, category, search)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchToken != token {
		// A newer fetch was issued while this one was in flight; it owns
		// the loading indicator and the product list now.
		return View{}, ErrFetchSuperseded
	}
	s.loading = false

	if err != nil {
		return renderError(fmt.Sprintf("Connection error: %v", err)), err
	}
	s.products = products
	return RenderProducts(products), nil
}

// ResetFilter clears the active category filter and re-fetches the full
// catalog.
func (s *Store) ResetFilter(ctx context.Context) (View, error) {
	s.mu.Lock()
	s.currentFilter = ""
	s.mu.Unlock()
	return s.Fetch(ctx, "", "")
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Products returns a copy of the product list from the last committed fetch.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]Product, len(s.products))
	copy(products, s.products)
	return products
}

// CurrentFilter returns the last category filter applied, for UI
// highlighting. It is not re-validated against live data.
func (s *Store) CurrentFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFilter
}

// FilterByCategory narrows the stored product list to exact category matches
// and renders the result. This is a pure projection: it never re-fetches and
// never mutates the stored list.
func (s *Store) FilterByCategory(category string) View {
	s.mu.Lock()
	s.currentFilter = category
	filtered := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	s.mu.Unlock()
	return RenderProducts(filtered)
}

// Search narrows the stored product list to case-insensitive substring
// matches on name or category and renders the result.
func (s *Store) Search(keyword string) View {
	s.mu.Lock()
	matches := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if containsFold(p.Name, keyword) || containsFold(p.Category, keyword) {
			matches = append(matches, p)
		}
	}
	s.mu.Unlock()
	return RenderProducts(matches)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AddToCart appends a snapshot of the identified product to the cart. It
// refuses unknown ids and out-of-stock products with an error notification;
// later changes to the product do not affect lines already added.
func (s *Store) AddToCart(productID uint) bool {
	s.mu.Lock()
	var found *Product
	for i := range s.products {
		if s.products[i].ID == productID {
			found = &s.products[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		s.notifier.Show("Product not found", NotifyError)
		return false
	}
	if !found.Available() {
		name := found.Name
		s.mu.Unlock()
		s.notifier.Show(fmt.Sprintf("%q is out of stock", name), NotifyError)
		return false
	}
	snapshot := *found
	s.cart = append(s.cart, CartLine{Product: snapshot})
	name := snapshot.Name
	s.mu.Unlock()

	s.notifier.Show(fmt.Sprintf("Added %q to your cart", name), NotifySuccess)
	return true
}

// CartCount returns the number of lines in the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart)
}

// ViewCart returns the itemized cart with its total: each line's price
// parsed to an integer and summed, the total formatted with dot grouping.
// An empty cart yields ErrEmptyCart and an error notification.
func (s *Store) ViewCart() (CartView, error) {
	s.mu.Lock()
	lines := make([]CartLine, len(s.cart))
	copy(lines, s.cart)
	s.mu.Unlock()

	if len(lines) == 0 {
		s.notifier.Show("Your cart is empty", NotifyError)
		return CartView{}, ErrEmptyCart
	}

	total := cartTotal(lines)
	return CartView{
		Lines:        lines,
		Total:        total,
		TotalDisplay: FormatPrice(total),
	}, nil
}
