package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// ParseCurrency parses listing prices such as "$1,234.50".
func ParseCurrency(s string) (float64, error) {
	clean := currencyReplacer.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, errors.Errorf("empty price %q", s)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "price %q", s)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.Errorf("price %q is not finite", s)
	}
	return v, nil
}
