package cart

import (
	"fmt"
	"strconv"
)

// FormatBRL renders integer cents as pt-BR currency ("R$ 1.234,56").
// Formatting is strictly a presentation concern; all arithmetic elsewhere
// stays in integer cents.
func FormatBRL(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := strconv.Itoa(cents / 100)
	grouped := make([]byte, 0, len(reais)+len(reais)/3)
	for i, d := range []byte(reais) {
		if i > 0 && (len(reais)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, cents%100)
}
