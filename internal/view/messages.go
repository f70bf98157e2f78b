package view

import (
	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/models"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
)

// Messages тексты интерфейса на одном языке.
type Messages struct {
	Lang            string
	Title           string
	ChooseCountry   string
	CountriesFailed string
	FilterLabel     string
	FilterHint      string
	SortLabel       string
	Loading         string
	Error           string
	Initial         string
	NoMatch         string
	Reset           string
	FlagAlt         string
	SelectedCountry string
	// Empty принимает название страны и год.
	Empty      string
	SortLabels map[board.SortMode]string
	dateLocale monday.Locale
	dateLayout string
}

var swedish = Messages{
	Lang:            "sv",
	Title:           "Helgdagar i Europa",
	ChooseCountry:   "Välj ett land...",
	CountriesFailed: "Kunde inte ladda länder",
	FilterLabel:     "Sök helgdag",
	FilterHint:      "Filtrera på namn...",
	SortLabel:       "Sortera",
	Loading:         "Laddar helgdagar...",
	Error:           "Kunde inte hämta helgdagar. Försök igen senare.",
	Initial:         "Välj ett land för att se dess helgdagar.",
	NoMatch:         "Inga helgdagar matchar din sökning.",
	Reset:           "Börja om",
	FlagAlt:         "Flagga",
	SelectedCountry: "valt land",
	Empty:           "Inga nationella helgdagar hittades för %s år %d.",
	SortLabels: map[board.SortMode]string{
		board.SortDateAsc:  "Datum (tidigast först)",
		board.SortDateDesc: "Datum (senast först)",
		board.SortNameAsc:  "Namn (A-Ö)",
		board.SortNameDesc: "Namn (Ö-A)",
	},
	dateLocale: monday.LocaleSvSE,
	dateLayout: "Monday 2 January 2006",
}

var english = Messages{
	Lang:            "en",
	Title:           "Public holidays in Europe",
	ChooseCountry:   "Choose a country...",
	CountriesFailed: "Could not load countries",
	FilterLabel:     "Search holiday",
	FilterHint:      "Filter by name...",
	SortLabel:       "Sort",
	Loading:         "Loading holidays...",
	Error:           "Could not fetch holidays. Please try again later.",
	Initial:         "Choose a country to see its public holidays.",
	NoMatch:         "No holidays match your search.",
	Reset:           "Start over",
	FlagAlt:         "Flag",
	SelectedCountry: "the selected country",
	Empty:           "No national holidays found for %s in %d.",
	SortLabels: map[board.SortMode]string{
		board.SortDateAsc:  "Date (earliest first)",
		board.SortDateDesc: "Date (latest first)",
		board.SortNameAsc:  "Name (A-Z)",
		board.SortNameDesc: "Name (Z-A)",
	},
	dateLocale: monday.LocaleEnUS,
	dateLayout: "Monday, January 2, 2006",
}

var supported = language.NewMatcher([]language.Tag{language.Swedish, language.English})

// MessagesFor подбирает тексты для tag, по умолчанию шведские.
func MessagesFor(tag language.Tag) Messages {
	_, idx, conf := supported.Match(tag)
	if conf == language.No {
		return swedish
	}
	if idx == 1 {
		return english
	}
	return swedish
}

// FormatDate длинная дата с днём недели, например "torsdag 1 januari 2026".
func (m Messages) FormatDate(d models.Date) string {
	return monday.Format(d.Time, m.dateLayout, m.dateLocale)
}
