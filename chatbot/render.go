package chatbot

import (
	"fmt"
	"strings"

	"brewheaven-api/models"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "₱"

// FormatPrice renders an amount with the shop currency and two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}

// MenuContext renders items grouped by category, categories in order of
// first appearance. Bestsellers carry a star.
func MenuContext(items []models.MenuItem) string {
	if len(items) == 0 {
		return ""
	}
	var order []string
	groups := make(map[string][]string)
	for _, item := range items {
		if _, ok := groups[item.Category]; !ok {
			order = append(order, item.Category)
		}
		entry := fmt.Sprintf("%s (%s) - %s", item.Name, FormatPrice(item.Price), item.Description)
		if item.IsBestseller {
			entry += " ⭐"
		}
		groups[item.Category] = append(groups[item.Category], entry)
	}

	var sb strings.Builder
	sb.WriteString("Available items by category:\n")
	for _, cat := range order {
		fmt.Fprintf(&sb, "%s: %s\n", cat, strings.Join(groups[cat], ", "))
	}
	return sb.String()
}

// coffeeListing renders the Coffee-category items as "Name (₱0.00)" joined
// by commas. It returns "" when there are none.
func coffeeListing(items []models.MenuItem) string {
	var entries []string
	for _, item := range items {
		if item.Category == models.CategoryCoffee {
			entries = append(entries, fmt.Sprintf("%s (%s)", item.Name, FormatPrice(item.Price)))
		}
	}
	return strings.Join(entries, ", ")
}
