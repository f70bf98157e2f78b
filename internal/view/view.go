// Package view строит модель страницы из состояния сессии и рендерит её
// шаблоном html/template.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/models"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DefaultFlagURLPattern адрес флага по коду страны в нижнем регистре.
const DefaultFlagURLPattern = "https://flagcdn.com/w20/%s.png"

// Card карточка одного праздника.
type Card struct {
	FlagURL   string
	LocalName string
	Name      string
	Date      string
}

// SortOption вариант в списке сортировки.
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// CountrySelect состояние списка выбора страны.
type CountrySelect struct {
	Placeholder string
	Options     []models.CountryOption
	Selected    string
	Disabled    bool
}

// Page модель страницы. Показана ровно одна из панелей статуса либо
// контейнер с карточками (Cards или EmptyMessage).
type Page struct {
	Messages     Messages
	Year         int
	Status       board.Status
	Countries    CountrySelect
	SearchTerm   string
	SortOptions  []SortOption
	ShowLoading  bool
	ShowError    bool
	ShowInitial  bool
	ShowNoMatch  bool
	EmptyMessage string
	Cards        []Card
}

// Input данные для построения страницы.
type Input struct {
	Snapshot       board.Snapshot
	Countries      []models.CountryOption
	CountriesErr   error
	Year           int
	Locale         language.Tag
	FlagURLPattern string
}

// Build собирает модель страницы.
func Build(in Input) Page {
	msg := MessagesFor(in.Locale)
	st := in.Snapshot.State

	p := Page{
		Messages:   msg,
		Year:       in.Year,
		Status:     st.Status,
		SearchTerm: st.SearchTerm,
		Countries: CountrySelect{
			Placeholder: msg.ChooseCountry,
			Options:     in.Countries,
			Selected:    st.Country,
		},
	}
	if in.CountriesErr != nil {
		p.Countries = CountrySelect{Placeholder: msg.CountriesFailed, Disabled: true}
	}
	for _, mode := range board.SortModes {
		p.SortOptions = append(p.SortOptions, SortOption{
			Value:    string(mode),
			Label:    msg.SortLabels[mode],
			Selected: mode == st.SortMode,
		})
	}

	switch st.Status {
	case board.StatusLoading:
		p.ShowLoading = true
	case board.StatusError:
		p.ShowError = true
	case board.StatusNoMatch:
		p.ShowNoMatch = true
	case board.StatusSuccess:
		visible := in.Snapshot.Visible
		switch {
		case len(visible) > 0:
			pattern := in.FlagURLPattern
			if pattern == "" {
				pattern = DefaultFlagURLPattern
			}
			p.Cards = make([]Card, 0, len(visible))
			for _, h := range visible {
				p.Cards = append(p.Cards, Card{
					FlagURL:   FlagURL(pattern, st.Country),
					LocalName: h.LocalName,
					Name:      h.Name,
					Date:      msg.FormatDate(h.Date),
				})
			}
		case strings.TrimSpace(st.SearchTerm) != "":
			p.Status = board.StatusNoMatch
			p.ShowNoMatch = true
		default:
			p.EmptyMessage = fmt.Sprintf(msg.Empty, countryName(in.Countries, st.Country, msg), in.Year)
		}
	default:
		p.ShowInitial = true
	}
	return p
}

// FlagURL адрес изображения флага для кода страны.
func FlagURL(pattern, countryCode string) string {
	return fmt.Sprintf(pattern, strings.ToLower(countryCode))
}

func countryName(options []models.CountryOption, code string, msg Messages) string {
	for _, o := range options {
		if o.Code == code {
			return o.DisplayName
		}
	}
	if code != "" {
		return code
	}
	return msg.SelectedCountry
}

// Renderer исполняет шаблон страницы.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	const op = "view.NewRenderer"
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render пишет страницу в w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	const op = "view.Render"
	if err := r.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
