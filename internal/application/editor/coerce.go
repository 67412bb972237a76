package editor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity interpreta la cantidad escrita en el formulario. Los decimales
// se truncan; lo que no es un número, o queda por debajo de 1, vale 1.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
			return 1
		}
		n = int(math.Floor(f))
	}
	if n < 1 {
		return 1
	}
	return n
}

// ParsePrice precio unitario; texto inválido o negativo vale 0.
func ParsePrice(s string) decimal.Decimal {
	return parseNonNegative(s)
}

// ParseTaxRate porcentaje de impuesto; texto inválido o negativo vale 0.
func ParseTaxRate(s string) decimal.Decimal {
	return parseNonNegative(s)
}

func parseNonNegative(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// rawText extrae el texto de un valor JSON: el contenido de un string o el
// literal de un número. ok es false para objetos, arrays, booleanos y null.
func rawText(raw json.RawMessage) (string, bool) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw), true
	default:
		return "", false
	}
}

// rawString exige un string JSON.
func rawString(raw json.RawMessage) (string, bool) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	return rawText(raw)
}

// present distingue un campo ausente o null de uno con valor.
func present(raw json.RawMessage) bool {
	t := strings.TrimSpace(string(raw))
	return t != "" && t != "null"
}
