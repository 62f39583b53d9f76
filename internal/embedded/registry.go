// Package embedded registers every compiled-in format handler.
// Importing it for side effects makes the format registry complete.
package embedded

import (
	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/internal/formats/jsonconfig"
	"github.com/FocuswithJustin/pkgmap/internal/formats/pkgfile"
	"github.com/FocuswithJustin/pkgmap/internal/formats/xmlcatalog"
)

// init registers the handlers. Registration order is sniffing order:
// the line format goes last because its parse probe is the weakest
// signature and must not shadow structured formats.
func init() {
	jsonconfig.Register()
	xmlcatalog.Register()
	pkgfile.Register()
}

// Count reports how many format handlers are registered.
func Count() int {
	return len(formats.List())
}
