package utils

import (
	"fmt"
	"math"
)

// FormatKRW renders a Korean-won amount at the customary scale:
// 조원 (trillions), 억원 (hundred millions), 만원 (ten thousands).
//
//	523659586000000 → "523.7조원"
func FormatKRW(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.1f조원", amount/1e12)
	case abs >= 1e8:
		return fmt.Sprintf("%.1f억원", amount/1e8)
	case abs >= 1e4:
		return fmt.Sprintf("%.1f만원", amount/1e4)
	default:
		return fmt.Sprintf("%.0f원", amount)
	}
}
