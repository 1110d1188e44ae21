package storefront

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyCart is returned when viewing a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// CartLine is one entry in the cart: a snapshot of the product taken at
// add-time. Adding the same product twice yields two lines.
type CartLine struct {
	Product Product
}

// CartView is the itemized listing presented when the cart is opened.
type CartView struct {
	Lines        []CartLine
	Total        int64
	TotalDisplay string
}

// ParsePrice converts a dot-grouped price string such as "500.000" into its
// integer amount. The currency unit is implicit.
func ParsePrice(price string) (int64, error) {
	cleaned := strings.ReplaceAll(price, ".", "")
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", price, err)
	}
	return amount, nil
}

// FormatPrice renders an integer amount with dot grouping, the inverse of
// ParsePrice: 500000 becomes "500.000".
func FormatPrice(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// cartTotal sums the parsed price of every line, skipping any line whose
// price string does not parse.
func cartTotal(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		amount, err := ParsePrice(line.Product.Price)
		if err != nil {
			continue
		}
		total += amount
	}
	return total
}
