package locale

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount as a locale-formatted currency string using
// the locale's configured separators and symbol position, and the currency's
// decimal-place count. Formatting never fails: invalid rules degrade to
// FallbackFormat.
func FormatAmount(amount decimal.Decimal, rules FormatRules, symbol string, decimalPlaces int32) string {
	if rules.DecimalSeparator == "" || rules.DecimalSeparator == rules.ThousandsSeparator ||
		(rules.SymbolPosition != SymbolBefore && rules.SymbolPosition != SymbolAfter) ||
		decimalPlaces < 0 {
		return FallbackFormat(amount, symbol)
	}

	fixed := amount.StringFixed(decimalPlaces)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if idx := strings.Index(fixed, "."); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	grouped := groupThousands(intPart, rules.ThousandsSeparator)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	if rules.SymbolPosition == SymbolBefore {
		b.WriteString(symbol)
	}
	b.WriteString(grouped)
	if fracPart != "" {
		b.WriteString(rules.DecimalSeparator)
		b.WriteString(fracPart)
	}
	if rules.SymbolPosition == SymbolAfter {
		b.WriteString(" ")
		b.WriteString(symbol)
	}
	return b.String()
}

// ParseAmount recovers the numeric value from a string previously produced by
// FormatAmount under the same rules and symbol.
func ParseAmount(formatted string, rules FormatRules, symbol string) (decimal.Decimal, error) {
	s := strings.TrimSpace(formatted)
	s = strings.ReplaceAll(s, symbol, "")
	s = strings.TrimSpace(s)
	if rules.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, rules.ThousandsSeparator, "")
	}
	if rules.DecimalSeparator != "" && rules.DecimalSeparator != "." {
		s = strings.Replace(s, rules.DecimalSeparator, ".", 1)
	}
	return decimal.NewFromString(s)
}

// FallbackFormat is the generic 2-decimal, symbol-prefixed rendering used
// when locale formatting rules are unusable.
func FallbackFormat(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}

// groupThousands inserts the separator every three digits from the right
func groupThousands(digits, separator string) string {
	if separator == "" || len(digits) <= 3 {
		return digits
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, separator)
}
