package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// PricePolicy decides how an all-digit price string is read.
type PricePolicy string

const (
	// PriceCents treats all-digit prices as hundredths ("35000" -> 350).
	PriceCents PricePolicy = "cents"
	// PriceWhole keeps all-digit prices as is.
	PriceWhole PricePolicy = "whole"
)

// ParsePricePolicy parses a policy name; empty selects PriceCents.
func ParsePricePolicy(s string) (PricePolicy, error) {
	switch p := PricePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriceCents, nil
	case PriceCents, PriceWhole:
		return p, nil
	default:
		return "", fmt.Errorf("unknown price policy %q (want cents or whole)", s)
	}
}

// CleanPrice converts a scraped price string to a number.
// Currency symbols and separators other than '.' and ',' are dropped.
// All-digit strings follow the policy. Strings with a '.' keep the first
// two dot-separated parts. Anything else reads as 0.
func CleanPrice(s string, policy PricePolicy) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if cleaned != "" && isDigits(cleaned) {
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q: %w", s, err)
		}
		if policy == PriceWhole {
			return v, nil
		}
		return v / 100, nil
	}

	if strings.Contains(cleaned, ".") {
		parts := strings.Split(cleaned, ".")
		if len(parts) > 2 {
			cleaned = parts[0] + "." + parts[1]
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q: not a number", s)
		}
		return v, nil
	}

	return 0, nil
}

// CleanSkinTypes flattens a list literal such as "['Oily', 'Dry']" into "Oily,Dry".
func CleanSkinTypes(s string) string {
	s = strings.Trim(s, "[]'\" ")
	if s == "" {
		return ""
	}
	var types []string
	for _, t := range strings.Split(s, ",") {
		if strings.TrimSpace(t) == "" {
			continue
		}
		types = append(types, strings.Trim(t, " '\""))
	}
	return strings.Join(types, ",")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
