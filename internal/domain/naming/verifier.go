// Package naming valida nombres de empresa antes del registro (filtro de palabras prohibidas).
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mensajes de rechazo (idioma del producto).
const (
	ReasonBanned     = "Emri i kompanisë përmban fjalë të papërshtatshme. Ju lutemi zgjidhni një emër tjetër."
	ReasonTooShort   = "Emri i kompanisë duhet të jetë të paktën 2 karaktere."
	ReasonNoLetters  = "Emri i kompanisë duhet të përmbajë shkronja."
	ReasonSuspicious = "Emri i kompanisë duket i dyshimtë. Ju lutemi zgjidhni një emër tjetër."
)

// DefaultBannedWords lista base en albanés e inglés.
var DefaultBannedWords = []string{
	"shit", "fuck", "damn", "hell", "asshole", "bastard", "bitch",
	"kar", "pidh", "byth", "xha", "mut", "bythe",
	"spam", "scam", "fraud", "fake", "test123", "abc123",
	"kurv", "prostitut", "lut", "javash",
}

// palabras de menos letras que esto no se buscan dentro de las prohibidas
const minReverseMatchLen = 3

// repeticiones consecutivas de un mismo carácter que se consideran sospechosas
const maxRepeatedRun = 5

// Result resultado de Verify.
type Result struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

// Verifier comprueba nombres contra una lista normalizada de palabras prohibidas.
type Verifier struct {
	banned []string
}

// NewVerifier normaliza y deduplica la lista recibida.
func NewVerifier(words []string) *Verifier {
	seen := make(map[string]struct{}, len(words))
	banned := make([]string, 0, len(words))
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		banned = append(banned, n)
	}
	return &Verifier{banned: banned}
}

// Default verificador con DefaultBannedWords.
func Default() *Verifier {
	return NewVerifier(DefaultBannedWords)
}

// Verify aplica, en orden: palabras prohibidas, longitud mínima, presencia de letras y repeticiones.
func (v *Verifier) Verify(companyName string) Result {
	for _, word := range strings.Fields(Normalize(companyName)) {
		for _, b := range v.banned {
			if strings.Contains(word, b) {
				return Result{Reason: ReasonBanned}
			}
			if utf8.RuneCountInString(word) >= minReverseMatchLen && strings.Contains(b, word) {
				return Result{Reason: ReasonBanned}
			}
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(companyName)) < 2 {
		return Result{Reason: ReasonTooShort}
	}
	if onlyDigitsOrPunct(companyName) {
		return Result{Reason: ReasonNoLetters}
	}
	if hasRepeatedRun(companyName, maxRepeatedRun) {
		return Result{Reason: ReasonSuspicious}
	}
	return Result{IsValid: true}
}

// Normalize minúsculas, sin acentos (NFD sin marcas combinantes) y solo [a-z0-9] y espacios.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func onlyDigitsOrPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}

func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}
