package model

import (
	"fmt"
	"strings"
)

// FormatMoney renders an amount with thousands separators and two decimal
// places, e.g. 25000 -> "25,000.00".
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(whole) <= 3 {
		return sign + whole + "." + frac
	}

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return sign + b.String() + "." + frac
}
