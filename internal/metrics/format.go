package metrics

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/civicdash/internal/model"
)

// NotAvailable is rendered wherever an aggregate has no source data.
const NotAvailable = "N/A"

// compactMetricThreshold is the bound above which numeric module metrics are compacted.
const compactMetricThreshold = 1000

// FormatCompact formats a magnitude: n >= 1,000,000 as millions with one
// decimal and an "M" suffix, n >= 1,000 as thousands with no decimals and a
// "K" suffix, anything smaller as its plain decimal string.
func FormatCompact(n float64) string {
	switch {
	case n >= 1_000_000:
		return FormatFixed(n/1_000_000, 1) + "M"
	case n >= 1_000:
		return FormatFixed(n/1_000, 0) + "K"
	case n == 0:
		// covers negative zero
		return "0"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FormatPercent renders a fraction as a whole percent, e.g. 0.634 -> "63%".
func FormatPercent(fraction float64) string {
	return FormatFixed(fraction*100, 0) + "%"
}

// RoundPercent converts a fraction to a whole percent, rounding halves up.
// It is a lossy display conversion; the model keeps the fraction.
func RoundPercent(fraction float64) int {
	return int(math.Floor(fraction*100 + 0.5))
}

// FormatFixed formats v with the given number of decimals.
// Rounding uses the exact binary value of v and resolves ties toward
// positive infinity, so FormatFixed(1.5, 0) is "2" and FormatFixed(2.5, 0)
// is "3".
func FormatFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if digits < 0 {
		digits = 0
	}

	const prec = 256
	scale := new(big.Float).SetPrec(prec).SetInt(
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil),
	)
	x := new(big.Float).SetPrec(prec).SetFloat64(v)
	x.Mul(x, scale)
	x.Add(x, new(big.Float).SetPrec(prec).SetFloat64(0.5))

	// floor
	n, acc := x.Int(nil)
	if acc == big.Above {
		n.Sub(n, big.NewInt(1))
	}

	neg := n.Sign() < 0
	s := n.Abs(n).String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// HumanizeKey turns a dataset key into a label: underscores become spaces
// and the first character of every word is upper-cased, e.g.
// "decisions_recorded" -> "Decisions Recorded". A word is a run of ASCII
// letters and digits, so "o'neil" becomes "O'Neil" and "2fa" stays "2fa".
// Other characters are left untouched.
func HumanizeKey(key string) string {
	// A Caser is stateful and must not be shared between goroutines.
	upper := cases.Upper(language.English)

	var sb strings.Builder
	inWord := false
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		word := isWordChar(r)
		if word && !inWord {
			sb.WriteString(upper.String(string(r)))
		} else {
			sb.WriteRune(r)
		}
		inWord = word
	}
	return sb.String()
}

func isWordChar(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// FormatMetricValue renders a module metric value. Numbers above 1000 are
// compacted with FormatCompact; everything else uses its plain string form.
func FormatMetricValue(v model.MetricValue) string {
	if n, ok := v.Number(); ok && n > compactMetricThreshold {
		return FormatCompact(n)
	}
	return v.String()
}
