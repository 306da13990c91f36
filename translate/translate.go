// Package translate formats user-facing messages for the host locale.
package translate

import (
	"errors"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/slasm/isa github.com/ezrec/slasm/asm github.com/ezrec/slasm/disasm github.com/ezrec/slasm/cmd/slasm

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("slasm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Error returns a sentinel error with a translated message.
func Error(key message.Reference) error {
	return errors.New(printer.Sprintf(key))
}
