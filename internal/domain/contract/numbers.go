package contract

import (
	"fmt"
	"strconv"
	"strings"
)

// NextContractNumber derives the next contract number in the form
// CNT-YYYY-NNN from the last assigned one. The sequence counter carries on
// across years; only the year segment is refreshed. Like employee codes,
// generation is read-then-write without a lock.
func NextContractNumber(last string, year int) string {
	if last == "" {
		return fmt.Sprintf("CNT-%d-001", year)
	}
	parts := strings.Split(last, "-")
	if len(parts) != 3 || parts[0] != "CNT" {
		return fmt.Sprintf("CNT-%d-001", year)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Sprintf("CNT-%d-001", year)
	}
	return fmt.Sprintf("CNT-%d-%03d", year, n+1)
}
