// Package extractor fetches the watched page and pulls one signal out of it.
//
// The HTTP side is a single GET with a fixed user agent and timeout. The HTML
// side is a Locator: HiddenInput reads a month/year pair from hidden form
// fields, PDFLink returns the first anchor whose href ends in ".pdf". Every
// failure (transport, status, parse, required field missing) comes back as an
// *Error tagged with services.ErrExtraction; a PDF link that is simply not on
// the page is an empty scalar signal, not an error.
package extractor
