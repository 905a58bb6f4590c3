package searchpage

import (
	"math"
	"strconv"
	"strings"
)

// FormatPriceINR форматирует цену в рупиях с индийской группировкой: ₹50,00,000
func FormatPriceINR(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "₹0"
	}
	rounded := int64(math.Round(math.Abs(price)))
	digits := strconv.FormatInt(rounded, 10)

	var groups []string
	if len(digits) > 3 {
		groups = append(groups, digits[len(digits)-3:])
		digits = digits[:len(digits)-3]
		for len(digits) > 2 {
			groups = append([]string{digits[len(digits)-2:]}, groups...)
			digits = digits[:len(digits)-2]
		}
	}
	if digits != "" {
		groups = append([]string{digits}, groups...)
	}

	sign := ""
	if price < 0 {
		sign = "-"
	}
	return sign + "₹" + strings.Join(groups, ",")
}

// FormatPriceShort - короткая форма для маркеров: ₹85 L, ₹1.2 Cr
func FormatPriceShort(price float64) string {
	switch {
	case price >= 1e7:
		return "₹" + strconv.FormatFloat(math.Round(price/1e6)/10, 'f', -1, 64) + " Cr"
	case price >= 1e5:
		return "₹" + strconv.FormatFloat(math.Round(price/1e4)/10, 'f', -1, 64) + " L"
	default:
		return FormatPriceINR(price)
	}
}
