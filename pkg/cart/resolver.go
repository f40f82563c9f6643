package cart

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"commerce-agent-be/pkg/store"
)

// ProductLookup is the on-demand fallback search used when an item name
// is not found among the session's last results.
type ProductLookup interface {
	SearchText(ctx context.Context, query string, k int) ([]store.Product, error)
}

// Resolver mutates a session's cart, resolving "#N" and name references
// against the last-results list. Every operation returns a user-facing
// message; not-found conditions are guidance, never errors.
type Resolver struct {
	lookup ProductLookup
}

func NewResolver(lookup ProductLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

var (
	trailingIndexPattern = regexp.MustCompile(`#?(\d+)$`)
	anyDigitsPattern     = regexp.MustCompile(`\d+`)
)

// Add resolves item as either a trailing "#N" index or a product name
// and appends the match to the cart.
func (r *Resolver) Add(ctx context.Context, st *store.Session, item string) string {
	trimmed := strings.TrimSpace(item)
	if m := trailingIndexPattern.FindStringSubmatch(trimmed); m != nil {
		idx, _ := strconv.Atoi(m[1])
		return r.AddByIndex(st, idx)
	}
	return r.AddByName(ctx, st, trimmed)
}

// AddByIndex appends last_results[idx-1] to the cart. idx is 1-based.
func (r *Resolver) AddByIndex(st *store.Session, idx int) string {
	if len(st.LastResults) == 0 {
		return "There are no recent results. Run a search, then use `add #2`."
	}
	if idx < 1 || idx > len(st.LastResults) {
		return fmt.Sprintf("Pick a number between 1 and %d.", len(st.LastResults))
	}
	item := st.LastResults[idx-1]
	st.Cart = append(st.Cart, item)
	return fmt.Sprintf("Added **%s** to your cart.", item.Name)
}

// AddByName matches name case-insensitively (exact or substring) against
// last results, first match wins. Misses fall back to a single-hit search.
func (r *Resolver) AddByName(ctx context.Context, st *store.Session, name string) string {
	q := strings.ToLower(strings.TrimSpace(name))
	for _, p := range st.LastResults {
		lower := strings.ToLower(p.Name)
		if q == lower || strings.Contains(lower, q) {
			st.Cart = append(st.Cart, p)
			return fmt.Sprintf("Added **%s** to your cart.", p.Name)
		}
	}

	hits, err := r.lookup.SearchText(ctx, name, 1)
	if err == nil && len(hits) > 0 {
		st.Cart = append(st.Cart, hits[0])
		return fmt.Sprintf("Added **%s** to your cart.", hits[0].Name)
	}
	return "I couldn’t find that product. Try `add <exact product name>` or `add #2`."
}

// AddProduct appends a caller-supplied product payload directly.
func (r *Resolver) AddProduct(st *store.Session, p store.Product) string {
	st.Cart = append(st.Cart, p)
	return fmt.Sprintf("Added **%s** to your cart.", p.Name)
}

// Remove deletes a cart entry by a numeric index found anywhere in arg
// (1-based against cart order) or by case-insensitive name substring.
func (r *Resolver) Remove(st *store.Session, arg string) string {
	if len(st.Cart) == 0 {
		return "Your cart is empty."
	}

	if m := anyDigitsPattern.FindString(arg); m != "" {
		idx, _ := strconv.Atoi(m)
		if idx >= 1 && idx <= len(st.Cart) {
			item := st.Cart[idx-1]
			st.Cart = append(st.Cart[:idx-1], st.Cart[idx:]...)
			return fmt.Sprintf("Removed **%s** from your cart.", item.Name)
		}
	}

	q := strings.ToLower(strings.TrimSpace(arg))
	for i, p := range st.Cart {
		if strings.Contains(strings.ToLower(p.Name), q) {
			st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
			return fmt.Sprintf("Removed **%s** from your cart.", p.Name)
		}
	}
	return "Didn’t find that item. Use an index like `remove #1` or a clear name."
}

// View renders the cart as an enumerated list.
func (r *Resolver) View(st *store.Session) string {
	if len(st.Cart) == 0 {
		return "🛒 Your cart is empty."
	}
	lines := make([]string, 0, len(st.Cart))
	for i, p := range st.Cart {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) %s", i+1, p.Name, p.Price, p.URL))
	}
	return "🛒 Your cart:\n" + strings.Join(lines, "\n")
}

// Checkout renders an itemized summary and clears the cart. Payment is
// mocked; an empty cart returns a message and clears nothing.
func (r *Resolver) Checkout(st *store.Session) string {
	if len(st.Cart) == 0 {
		return "Your cart is empty."
	}
	lines := make([]string, 0, len(st.Cart))
	for _, p := range st.Cart {
		lines = append(lines, fmt.Sprintf("- %s (%s)", p.Name, p.Price))
	}
	n := len(st.Cart)
	st.Cart = st.Cart[:0]
	return fmt.Sprintf("✅ Checkout complete!\nItems:\n%s\nTotal items: %d\n(Payment mocked.)",
		strings.Join(lines, "\n"), n)
}
