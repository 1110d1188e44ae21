package storefront

// PlaceholderImage is shown when a product image fails to load.
const PlaceholderImage = "https://via.placeholder.com/500x500?text=No+Image"

// ViewKind identifies what the product area is currently showing.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewError
	ViewEmpty
	ViewGrid
)

// View is the rendered state of the product area. Exactly one of the kinds
// applies; Cards is populated only for ViewGrid.
type View struct {
	Kind    ViewKind
	Message string
	// Retry is set on error views: the user can re-issue the failed fetch.
	Retry bool
	Cards []ProductCard
}

// ProductCard is the per-product projection shown in the grid.
type ProductCard struct {
	ID            uint
	Name          string
	Price         string
	Category      string
	Badge         string
	BadgeClass    string
	Image         string
	FallbackImage string
	// AddToCart is enabled exactly when the product is in stock, and the
	// label reflects availability.
	AddToCartEnabled bool
	AddToCartLabel   string
}

// RenderProducts projects a product list into the grid view, or an
// empty-state view when the list has no entries.
func RenderProducts(products []Product) View {
	if len(products) == 0 {
		return View{
			Kind:    ViewEmpty,
			Message: "No products found",
		}
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		card := ProductCard{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Category:      p.Category,
			Image:         p.Image,
			FallbackImage: PlaceholderImage,
		}
		if p.Badge != nil {
			card.Badge = *p.Badge
		}
		if p.BadgeClass != nil {
			card.BadgeClass = *p.BadgeClass
		}
		if p.Available() {
			card.AddToCartEnabled = true
			card.AddToCartLabel = "Add to cart"
		} else {
			card.AddToCartLabel = "Out of stock"
		}
		cards = append(cards, card)
	}

	return View{
		Kind:  ViewGrid,
		Cards: cards,
	}
}

// renderError builds the inline error panel with its retry affordance.
func renderError(message string) View {
	return View{
		Kind:    ViewError,
		Message: message,
		Retry:   true,
	}
}

// Available reports whether the product can still be added to a cart.
func (p Product) Available() bool {
	return p.Stock > 0
}
