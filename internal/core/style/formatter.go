// Package style renders resolved citation metadata as display strings.
// Italic spans are delimited with <i>...</i>; the document editor turns
// those into italic runs.
package style

import (
	"fmt"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// Formatter produces the display strings for one citation style. Exactly one
// style is active per processing run.
type Formatter interface {
	Name() string

	// Format renders the full-form citation.
	Format(m *model.CitationMetadata) string

	// FormatShort renders the abbreviated form for a source already cited
	// earlier in the document.
	FormatShort(m *model.CitationMetadata) string
}

var registry = map[string]Formatter{}

func register(f Formatter) {
	registry[normalizeStyleName(f.Name())] = f
}

// Get returns the formatter for the named style, falling back to Chicago
// when the name is unknown or empty.
func Get(name string) Formatter {
	if f, ok := registry[normalizeStyleName(name)]; ok {
		return f
	}
	return registry[normalizeStyleName(ChicagoName)]
}

func normalizeStyleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatIbid renders an ibid reference, optionally with a page or page
// range. The ibid form is structural, not style-specific.
func FormatIbid(page string) string {
	if page != "" {
		return fmt.Sprintf("<i>Ibid</i>., %s.", page)
	}
	return "<i>Ibid</i>."
}

// FormatAuthors joins an author list the way running prose cites it:
// "A", "A and B", "A, B, and C", "A et al." beyond three.
func FormatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	case 3:
		return strings.Join(authors[:2], ", ") + ", and " + authors[2]
	default:
		return authors[0] + " et al."
	}
}

// Surname extracts the family name from a "Given Family" author string.
// Names already in "Family, Given" order keep their first token.
func Surname(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return ""
	}
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	parts := strings.Fields(author)
	return parts[len(parts)-1]
}
