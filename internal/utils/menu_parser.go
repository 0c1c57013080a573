package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
)

var (
	categoryMarkers = []struct {
		marker   string
		category string
	}{
		{"MÓN MỚI", entities.MenuCategoryNew},
		{"MÓN MỖI NGÀY", entities.MenuCategoryDaily},
		{"MÓN ĐẶC BIỆT", entities.MenuCategorySpecial},
	}

	leadingBullets = regexp.MustCompile(`^[☆▪\x{FE0E}•\-\s]+`)
	orderingNotice = regexp.MustCompile(`(?i)^[A-Za-z/]+\s*đặt\s+cơm.*$`)
	numbering      = regexp.MustCompile(`^\d+\.\s*`)
	dishBullets    = regexp.MustCompile(`^[▪\x{FE0E}•\-]+\s*`)
	initialsPrefix = regexp.MustCompile(`^[A-Z]/[A-Z]`)
)

// ParseMenuText splits a pasted menu into dishes. Marker lines switch the current
// category; every other line is a comma separated list of dishes.
func ParseMenuText(text string) []domain.ParsedMenuItem {
	items := make([]domain.ParsedMenuItem, 0)
	currentCategory := entities.MenuCategoryDaily

lines:
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		for _, m := range categoryMarkers {
			if strings.Contains(trimmed, m.marker) {
				currentCategory = m.category
				continue lines
			}
		}

		clean := leadingBullets.ReplaceAllString(trimmed, "")
		clean = strings.TrimSpace(orderingNotice.ReplaceAllString(clean, ""))
		if clean == "" {
			continue
		}

		for _, dish := range strings.Split(clean, ",") {
			dish = strings.TrimSpace(dish)
			if dish == "" {
				continue
			}
			dish = numbering.ReplaceAllString(dish, "")
			dish = strings.TrimSpace(dishBullets.ReplaceAllString(dish, ""))

			if utf8.RuneCountInString(dish) > 1 && !initialsPrefix.MatchString(dish) {
				items = append(items, domain.ParsedMenuItem{
					Name:     dish,
					Category: currentCategory,
				})
			}
		}
	}

	return items
}
