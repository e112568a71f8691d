package document

import (
	"fmt"
	"time"
)

// Barcode renders the canonical document barcode. The format is
// symbol/number/period/department, with the number zero-padded to four
// digits and the period encoded as two-digit year plus two-digit month.
// It is a pure function of its inputs so the same sequence number always
// yields the same label.
func Barcode(symbol string, number int, year int, month time.Month, departmentNumber string) string {
	return fmt.Sprintf("%s/%04d/%02d%02d/%s", symbol, number, year%100, int(month), departmentNumber)
}
