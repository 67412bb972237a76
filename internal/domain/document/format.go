package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddressSeparator separa los componentes de la dirección del cliente.
const AddressSeparator = ", "

// FormatDate convierte YYYY-MM-DD al formato largo del locale
// ("14 Oct 2026", "14. Okt. 2026"). Una fecha que no se puede interpretar se
// devuelve tal cual.
func FormatDate(iso string, l Labels) string {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return fmt.Sprintf(l.DateFormat, d.Day(), l.Months[d.Month()-1], d.Year())
}

// FormatAmount dos decimales con punto, sin separador de miles. No redondea
// importes que ya vienen con dos decimales.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SplitAddress parte la dirección en líneas de presentación conservando el orden.
// Una dirección en blanco no tiene líneas.
func SplitAddress(address string) []string {
	if strings.TrimSpace(address) == "" {
		return nil
	}
	return strings.Split(address, AddressSeparator)
}
