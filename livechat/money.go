package livechat

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// moneyRe splits a displayed purchase amount ("$5.00", "R$ 10,00", "100 ¥")
// into a currency part on either side of the number.
var moneyRe = regexp.MustCompile(`^([^\d]*)([\d.,]+)([^\d]*)$`)

// parseMoney extracts a currency label and an exact amount from a displayed
// purchase string. The amount keeps full precision; float conversion would
// corrupt money values.
func parseMoney(display string) (string, *decimal.Decimal, error) {
	m := moneyRe.FindStringSubmatch(strings.TrimSpace(display))
	if m == nil {
		return "", nil, errors.Errorf("livechat: malformed amount %q", display)
	}

	currency := strings.TrimSpace(m[1])
	if currency == "" {
		currency = strings.TrimSpace(m[3])
	}

	number := m[2]
	// Displayed numbers use commas as thousand separators unless the comma
	// is the only separator, in which case it is the decimal mark.
	if strings.Contains(number, ",") {
		if strings.Contains(number, ".") {
			number = strings.ReplaceAll(number, ",", "")
		} else if parts := strings.Split(number, ","); len(parts) == 2 && len(parts[1]) == 2 {
			number = parts[0] + "." + parts[1]
		} else {
			number = strings.ReplaceAll(number, ",", "")
		}
	}

	amount, err := decimal.NewFromString(number)
	if err != nil {
		return "", nil, errors.Wrapf(err, "amount %q", display)
	}
	return currency, &amount, nil
}
