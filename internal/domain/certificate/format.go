package certificate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9\-_ ]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// FormatLongDate renders t as "24 de marzo de 2025" in loc.
func FormatLongDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
}

type currencyFormatter struct {
	printer *message.Printer
	code    string
}

func newCurrencyFormatter(locale, code string) (currencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return currencyFormatter{}, fmt.Errorf("locale %q: %w", locale, err)
	}
	return currencyFormatter{printer: message.NewPrinter(tag), code: code}, nil
}

// Format groups whole currency units for the locale and appends the code.
func (c currencyFormatter) Format(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	grouped := c.printer.Sprint(number.Decimal(whole, number.MaxFractionDigits(0)))
	if c.code == "" {
		return grouped
	}
	return grouped + " " + c.code
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SanitizeFileName keeps ASCII letters, digits, dashes and underscores and
// joins words with underscores.
func SanitizeFileName(name string) string {
	cleaned := disallowedChars.ReplaceAllString(stripDiacritics(name), "")
	cleaned = strings.TrimSpace(cleaned)
	return whitespaceRun.ReplaceAllString(cleaned, "_")
}

func FileName(fullName string) string {
	token := SanitizeFileName(fullName)
	if token == "" {
		token = "empleado"
	}
	return "certificado-" + token + ".pdf"
}
