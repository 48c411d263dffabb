package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
)

var ErrInvalidPrice = httperr.Validation("invalid_price")

// maxWholeDigits caps the whole part so cents always fit in an int64.
const maxWholeDigits = 9

// ParsePrice turns "12.5", "12.50" or "$12" into cents. Only digits and
// one dot are accepted, with at most two decimals; zero is rejected.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, ErrInvalidPrice
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, ErrInvalidPrice
	}
	if len(whole) > maxWholeDigits || (whole == "" && frac == "") {
		return 0, ErrInvalidPrice
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, ErrInvalidPrice
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}

	cents := w*100 + f
	if cents <= 0 {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
