package style

import (
	"fmt"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// ChicagoName is the default style for all runs.
const ChicagoName = "Chicago Manual of Style"

func init() {
	register(chicago{})
}

type chicago struct{}

func (chicago) Name() string { return ChicagoName }

func (c chicago) Format(m *model.CitationMetadata) string {
	if m == nil {
		return ""
	}
	switch m.Type {
	case model.TypeLegal:
		return c.formatLegal(m)
	case model.TypeBook:
		return c.formatBook(m)
	case model.TypeNewspaper, model.TypeGovernment, model.TypeURL:
		return c.formatWeb(m)
	case model.TypeInterview:
		return c.formatInterview(m)
	default:
		// Journal, medical, and anything else with article shape.
		return c.formatArticle(m)
	}
}

func (c chicago) FormatShort(m *model.CitationMetadata) string {
	if m == nil {
		return ""
	}
	if m.Type == model.TypeLegal {
		name := m.CaseName
		if name == "" {
			name = m.Citation
		}
		return fmt.Sprintf("<i>%s</i>.", name)
	}

	var b strings.Builder
	if surname := Surname(m.FirstAuthor()); surname != "" {
		b.WriteString(surname)
		b.WriteString(", ")
	}
	short := shortTitle(m.Title)
	if m.Type == model.TypeBook {
		fmt.Fprintf(&b, "<i>%s</i>", short)
	} else {
		fmt.Fprintf(&b, "%q", short)
	}
	b.WriteString(".")
	return b.String()
}

// formatBook renders: Author, <i>Title</i> (Place: Publisher, Year).
func (c chicago) formatBook(m *model.CitationMetadata) string {
	var b strings.Builder
	if authors := FormatAuthors(m.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "<i>%s</i>", m.Title)
	if m.Place != "" || m.Publisher != "" || m.Year != "" {
		b.WriteString(" (")
		if m.Place != "" {
			b.WriteString(m.Place)
			b.WriteString(": ")
		}
		b.WriteString(m.Publisher)
		if m.Year != "" {
			if m.Publisher != "" {
				b.WriteString(", ")
			}
			b.WriteString(m.Year)
		}
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}

// formatArticle renders: Author, "Title," <i>Journal</i> Vol, no. N (Year):
// pages, with a DOI link when present.
func (c chicago) formatArticle(m *model.CitationMetadata) string {
	var b strings.Builder
	if authors := FormatAuthors(m.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "\"%s,\"", strings.TrimRight(m.Title, "."))
	if m.Journal != "" {
		fmt.Fprintf(&b, " <i>%s</i>", m.Journal)
	}
	if m.Volume != "" {
		b.WriteString(" " + m.Volume)
	}
	if m.Issue != "" {
		b.WriteString(", no. " + m.Issue)
	}
	if m.Year != "" {
		fmt.Fprintf(&b, " (%s)", m.Year)
	}
	if m.Pages != "" {
		b.WriteString(": " + m.Pages)
	}
	b.WriteString(".")
	if m.DOI != "" {
		fmt.Fprintf(&b, " https://doi.org/%s.", model.NormalizeDOI(m.DOI))
	} else if m.PMID != "" {
		fmt.Fprintf(&b, " PMID: %s.", m.PMID)
	}
	return b.String()
}

// formatLegal renders: <i>Case Name</i>, Citation (Court Year).
func (c chicago) formatLegal(m *model.CitationMetadata) string {
	var b strings.Builder
	if m.CaseName != "" {
		fmt.Fprintf(&b, "<i>%s</i>", m.CaseName)
		if m.Citation != "" {
			b.WriteString(", ")
		}
	}
	b.WriteString(m.Citation)
	if m.Year != "" {
		if m.Court != "" && !strings.Contains(m.Citation, m.Court) {
			fmt.Fprintf(&b, " (%s %s)", m.Court, m.Year)
		} else if !strings.Contains(m.Citation, m.Year) {
			fmt.Fprintf(&b, " (%s)", m.Year)
		}
	}
	s := b.String()
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// formatWeb renders pages, reports, and news items: Author, "Title,"
// <i>Site</i>, Year, URL.
func (c chicago) formatWeb(m *model.CitationMetadata) string {
	var b strings.Builder
	if authors := FormatAuthors(m.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "\"%s,\"", strings.TrimRight(m.Title, "."))
	if m.Publisher != "" {
		fmt.Fprintf(&b, " <i>%s</i>,", m.Publisher)
	}
	if m.Year != "" {
		b.WriteString(" " + m.Year + ",")
	}
	if m.URL != "" {
		b.WriteString(" " + m.URL)
	}
	s := strings.TrimRight(b.String(), ",")
	return s + "."
}

// formatInterview renders: Title (interview details are carried in the
// title field by the interview extractor).
func (c chicago) formatInterview(m *model.CitationMetadata) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(m.Title, "."))
	if m.Year != "" {
		fmt.Fprintf(&b, ", %s", m.Year)
	}
	return b.String() + "."
}

// shortTitle trims a title to its first clause, capped at four words.
func shortTitle(title string) string {
	if i := strings.IndexAny(title, ":;"); i > 0 {
		title = title[:i]
	}
	words := strings.Fields(title)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}
