package employee

import (
	"fmt"
	"strconv"
	"strings"
)

const codePrefix = "EMP-"

// NextCode derives the next human-readable employee code from the last
// assigned one: the numeric suffix is parsed, incremented and zero-padded to
// three digits. Generation is read-then-write without a lock, so two
// concurrent creates can mint the same code; that race is documented
// behavior, not something the store guards against.
func NextCode(last string) string {
	if last == "" {
		return codePrefix + "001"
	}
	suffix, ok := strings.CutPrefix(last, codePrefix)
	if !ok {
		return codePrefix + "001"
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return codePrefix + "001"
	}
	return fmt.Sprintf("%s%03d", codePrefix, n+1)
}
