// Package ledger formats the human-readable side of token transfers.
package ledger

import (
	"math"
	"strconv"
	"strings"
)

// Amounts in [minPlain, maxPlain) are written in plain decimal, the rest with an exponent.
const (
	minPlain = 1e-6
	maxPlain = 1e21
)

// FormatAmount renders amount in its shortest form: 5, 2.5, 0.0001, 1e+21, 1.5e-7.
// Negative zero prints as 0.
func FormatAmount(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "Infinity"
	case math.IsInf(amount, -1):
		return "-Infinity"
	case amount == 0:
		return "0"
	}

	abs := math.Abs(amount)
	if abs >= minPlain && abs < maxPlain {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}

	// strconv pads the exponent to two digits: 1e-07
	formatted := strconv.FormatFloat(amount, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	return mantissa + "e" + sign + digits
}

// TransferEntry is the history line recorded on both sides of a transfer:
// "<sender> sent <amount> <token> to <receiver>".
func TransferEntry(senderLogin string, amount float64, token string, receiverLogin string) string {
	sb := strings.Builder{}
	sb.WriteString(senderLogin)
	sb.WriteString(" sent ")
	sb.WriteString(FormatAmount(amount))
	sb.WriteRune(' ')
	sb.WriteString(token)
	sb.WriteString(" to ")
	sb.WriteString(receiverLogin)
	return sb.String()
}
