// Formal charges are integers in the file and strings in the
// hierarchy. Positive charges carry their plus sign, zero and
// negative are plain decimal.

package mmtf

import (
	"strconv"

	"github.com/andrew-torda/mmtf/pkg/dict"
)

func renderCharge(c int32) string {
	if c > 0 {
		return "+" + strconv.Itoa(int(c))
	}
	return strconv.Itoa(int(c))
}

// parseCharge undoes renderCharge. An empty string counts as no
// charge, since plenty of atoms never had one set.
func parseCharge(s string) (int32, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &dict.ChargeError{S: s}
	}
	return int32(n), nil
}
