package exam

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/user"
)

var hundred = decimal.NewFromInt(100)

// Float reads a nullable score as float64, 0 when null.
func Float(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	f, _ := d.Decimal.Float64()
	return f
}

// Score returns the decimal value of a nullable score, 0 when null.
func Score(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// optionKey reduces an answer such as "c) Mitocondria" or " C. " to "C".
func optionKey(s string) string {
	s = user.NormalizeText(s)
	if len(s) >= 2 && s[0] >= 'A' && s[0] <= 'Z' && (s[1] == ')' || s[1] == '.' || s[1] == ' ') {
		return s[:1]
	}
	return s
}

func truthValue(s string) string {
	switch v := user.NormalizeText(s); v {
	case "V", "TRUE", "CIERTO", catalog.Verdadero:
		return catalog.Verdadero
	case "F", "FALSE", catalog.Falso:
		return catalog.Falso
	default:
		return v
	}
}

func keySet(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if k := optionKey(p); k != "" {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isCorrectAllOrNothing reports whether the chosen keys match the expected set exactly.
func isCorrectAllOrNothing(chosen, expected []string) bool {
	if len(chosen) != len(expected) || len(expected) == 0 {
		return false
	}
	for i := range expected {
		if chosen[i] != expected[i] {
			return false
		}
	}
	return true
}

// Grade checks an answer against the question key. manual is true when the
// question type needs a human grader, in which case correct is always false.
func Grade(tipo, clave, texto string) (correct bool, manual bool) {
	if strings.TrimSpace(texto) == "" {
		return false, tipo == catalog.TipoJustificacion
	}

	switch tipo {
	case catalog.TipoJustificacion:
		return false, true
	case catalog.TipoOpcionMultiple:
		return isCorrectAllOrNothing(keySet(texto), keySet(clave)), false
	case catalog.TipoVerdaderoFalso:
		return truthValue(texto) == truthValue(clave), false
	default:
		return optionKey(texto) == optionKey(clave), false
	}
}

// Calificacion converts obtained over maximum points to a 0-100 grade.
func Calificacion(obtenido, maximo decimal.Decimal) int {
	if !maximo.IsPositive() {
		return 0
	}
	grade := obtenido.Div(maximo).Mul(hundred).Round(0).IntPart()
	switch {
	case grade < 0:
		return 0
	case grade > 100:
		return 100
	}
	return int(grade)
}
