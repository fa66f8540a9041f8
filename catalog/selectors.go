package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"menu-ordering/model"
	"menu-ordering/state"
)

func SelectAllProducts(s State) []model.Product { return s.Products }
func SelectCart(s State) []model.CartItem       { return s.Cart }
func SelectSelectedCategory(s State) string     { return s.SelectedCategory }
func SelectSearchTerm(s State) string           { return s.SearchTerm }

type filterInput struct {
	products []model.Product
	category string
	search   string
}

// SelectFilteredProducts keeps products in the selected category (or all of
// them for "All") whose name contains the search term, case-insensitively.
var SelectFilteredProducts = state.CreateSelector(
	func(s State) filterInput {
		return filterInput{products: s.Products, category: s.SelectedCategory, search: s.SearchTerm}
	},
	func(a, b filterInput) bool {
		return state.SameSlice(a.products, b.products) && a.category == b.category && a.search == b.search
	},
	func(in filterInput) []model.Product {
		term := strings.ToLower(in.search)
		out := []model.Product{}
		for _, p := range in.products {
			if in.category != model.AllCategories && p.Category != in.category {
				continue
			}
			if !strings.Contains(strings.ToLower(p.Name), term) {
				continue
			}
			out = append(out, p)
		}
		return out
	},
)

// SelectCategories is "All" followed by each distinct category in
// first-seen order.
var SelectCategories = state.CreateSelector(
	SelectAllProducts,
	state.SameSlice[model.Product],
	func(products []model.Product) []string {
		out := []string{model.AllCategories}
		seen := make(map[string]bool)
		for _, p := range products {
			if !seen[p.Category] {
				seen[p.Category] = true
				out = append(out, p.Category)
			}
		}
		return out
	},
)

var SelectCartTotal = state.CreateSelector(
	SelectCart,
	state.SameSlice[model.CartItem],
	func(cart []model.CartItem) decimal.Decimal {
		total := decimal.Zero
		for _, it := range cart {
			total = total.Add(it.LineTotal())
		}
		return total
	},
)

var SelectCartItemCount = state.CreateSelector(
	SelectCart,
	state.SameSlice[model.CartItem],
	func(cart []model.CartItem) int {
		n := 0
		for _, it := range cart {
			n += it.Quantity
		}
		return n
	},
)

// FindProduct looks a product up by id.
func FindProduct(s State, id int64) (model.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
