package lifecycle

import (
	"strings"

	"jozi-market/internal/model"
)

// Filter selects a subset of transformed orders for display.
type Filter string

const (
	// FilterAll keeps every order.
	FilterAll Filter = "all"

	// FilterActive excludes any order in a cancellation or return flow.
	FilterActive Filter = "active"

	// FilterDelivered keeps only delivered orders.
	FilterDelivered Filter = "delivered"

	// FilterRequests keeps only orders flagged for cancellation or return.
	FilterRequests Filter = "requests"
)

// ParseFilter maps a query parameter to a Filter, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterDelivered:
		return FilterDelivered
	case FilterRequests:
		return FilterRequests
	default:
		return FilterAll
	}
}

// MatchesSearch reports whether the order matches a free-text query,
// case-insensitively, against the full order number or any item name. The
// truncated display id is never consulted, so a full order number keeps
// matching even when its display form is compacted.
func MatchesSearch(detail *model.OrderDetail, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(detail.FullID), query) {
		return true
	}
	for _, item := range detail.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
	}
	return false
}

// matches applies a single filter to one order.
func (f Filter) matches(detail *model.OrderDetail) bool {
	switch f {
	case FilterActive:
		return !detail.InCancellationFlow() && !detail.InReturnFlow()
	case FilterDelivered:
		return detail.Status == model.OrderStatusDelivered
	case FilterRequests:
		return detail.InCancellationFlow() || detail.InReturnFlow()
	default:
		return true
	}
}

// Apply narrows a transformed order list by filter and search query,
// preserving order.
func Apply(details []model.OrderDetail, filter Filter, query string) []model.OrderDetail {
	result := make([]model.OrderDetail, 0, len(details))
	for i := range details {
		if filter.matches(&details[i]) && MatchesSearch(&details[i], query) {
			result = append(result, details[i])
		}
	}
	return result
}
