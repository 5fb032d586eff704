package user

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultUsernamePrefix = "user_default_"

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeText strips accents, trims and upper-cases s.
func NormalizeText(s string) string {
	return strings.ToUpper(strings.TrimSpace(stripAccents(s)))
}

func usernamePart(s string) string {
	s = strings.ToLower(stripAccents(s))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}

// BaseUsername builds first letter of nombre, apellido, last letter of nombre
// ("Oscar", "Morán" gives "omoranr"). It returns "" when nombre has no usable letters.
func BaseUsername(nombre, apellido string) string {
	n := usernamePart(nombre)
	if n == "" {
		return ""
	}
	return n[:1] + usernamePart(apellido) + n[len(n)-1:]
}

// GenerateUsername returns a free username for the given names, falling back to
// user_default_N and appending a counter on collisions.
func GenerateUsername(ctx context.Context, repo UserRepository, nombre, apellido string) (string, error) {
	base := BaseUsername(nombre, apellido)
	if base == "" {
		n, err := repo.CountUsernamePrefix(ctx, defaultUsernamePrefix)
		if err != nil {
			return "", err
		}
		base = fmt.Sprintf("%s%d", defaultUsernamePrefix, n+1)
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
