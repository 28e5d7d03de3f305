package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRMB renders an amount with thousand separators and the yuan sign,
// e.g. 83600 -> "¥83,600.00".
func FormatRMB(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	return sign + "¥" + groupThousands(s[:dot]) + s[dot:]
}

// ParseAmount parses "¥1,200.50" or "1200.5" into a float amount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(strings.ToLower(s), "rmb")
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseFloat(s, 64)
}

func groupThousands(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
