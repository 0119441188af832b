package providers

import "strings"

// publisherPlaces maps publisher-name fragments to publication places, used
// to fill the place slot Chicago book citations expect when the provider
// omits it. Matching is substring-based over the folded publisher name.
var publisherPlaces = map[string]string{
	// Trade houses.
	"simon & schuster":   "New York",
	"simon and schuster": "New York",
	"scribner":           "New York",
	"penguin":            "New York",
	"viking":             "New York",
	"random house":       "New York",
	"knopf":              "New York",
	"doubleday":          "New York",
	"vintage":            "New York",
	"pantheon":           "New York",
	"anchor":             "New York",
	"harpercollins":      "New York",
	"harper":             "New York",
	"william morrow":     "New York",
	"hachette":           "New York",
	"little, brown":      "Boston",
	"basic books":        "New York",
	"macmillan":          "New York",
	"st. martin's":       "New York",
	"henry holt":         "New York",
	"farrar, straus":     "New York",
	"picador":            "New York",
	"norton":             "New York",
	"w. w. norton":       "New York",
	"bloomsbury":         "New York",
	"grove":              "New York",
	"wiley":              "Hoboken",
	"mcgraw-hill":        "New York",
	"free press":         "New York",

	// University presses.
	"oxford university press":            "Oxford",
	"cambridge university press":         "Cambridge",
	"harvard university press":           "Cambridge, MA",
	"yale university press":              "New Haven",
	"princeton university press":         "Princeton",
	"columbia university press":          "New York",
	"mit press":                          "Cambridge, MA",
	"stanford university press":          "Stanford",
	"university of chicago press":        "Chicago",
	"university of california press":     "Berkeley",
	"johns hopkins":                      "Baltimore",
	"duke university press":              "Durham",
	"cornell university press":           "Ithaca",
	"university of pennsylvania press":   "Philadelphia",
	"university of north carolina press": "Chapel Hill",
	"university of toronto press":        "Toronto",
	"edinburgh university press":         "Edinburgh",
	"manchester university press":        "Manchester",

	// Academic and scholarly.
	"routledge":            "London",
	"taylor & francis":     "London",
	"brill":                "Leiden",
	"elsevier":             "Amsterdam",
	"springer":             "New York",
	"palgrave":             "London",
	"de gruyter":           "Berlin",
	"blackwell":            "Oxford",
	"polity":               "Cambridge",
	"verso":                "London",
	"rowman & littlefield": "Lanham",
	"sage":                 "Thousand Oaks, CA",

	// Medicine and science.
	"lippincott":                         "Philadelphia",
	"saunders":                           "Philadelphia",
	"guilford":                           "New York",
	"american psychiatric":               "Washington, DC",
	"american psychological association": "Washington, DC",

	// Tech.
	"o'reilly":       "Sebastopol",
	"addison-wesley": "Boston",
	"no starch":      "San Francisco",
	"manning":        "Shelter Island",
}

// PublisherPlace returns the conventional publication place for a publisher,
// or "" when unknown.
func PublisherPlace(publisher string) string {
	if publisher == "" {
		return ""
	}
	folded := strings.ToLower(publisher)
	for fragment, place := range publisherPlaces {
		if strings.Contains(folded, fragment) {
			return place
		}
	}
	return ""
}
