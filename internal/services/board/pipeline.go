package board

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/models"
)

// SortMode режим сортировки списка праздников.
type SortMode string

const (
	SortDateAsc  SortMode = "date-asc"
	SortDateDesc SortMode = "date-desc"
	SortNameAsc  SortMode = "name-asc"
	SortNameDesc SortMode = "name-desc"
)

// SortModes все поддерживаемые режимы в порядке показа.
var SortModes = []SortMode{SortDateAsc, SortDateDesc, SortNameAsc, SortNameDesc}

// Sort упорядочивает holidays на месте. Сортировка стабильная,
// неизвестный режим оставляет порядок без изменений.
// Имена сравниваются с учётом правил языка tag, без учёта регистра.
func Sort(holidays []models.Holiday, mode SortMode, tag language.Tag) {
	if len(holidays) < 2 {
		return
	}
	switch mode {
	case SortDateAsc:
		slices.SortStableFunc(holidays, func(a, b models.Holiday) int {
			return a.Date.Compare(b.Date.Time)
		})
	case SortDateDesc:
		slices.SortStableFunc(holidays, func(a, b models.Holiday) int {
			return b.Date.Compare(a.Date.Time)
		})
	case SortNameAsc, SortNameDesc:
		// collate.Collator не потокобезопасен, поэтому свой на каждый вызов.
		coll := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
		desc := mode == SortNameDesc
		slices.SortStableFunc(holidays, func(a, b models.Holiday) int {
			if desc {
				return coll.CompareString(b.LocalName, a.LocalName)
			}
			return coll.CompareString(a.LocalName, b.LocalName)
		})
	}
}

// Filter возвращает праздники, у которых локальное или международное
// название содержит term без учёта регистра. Пустой term (после TrimSpace)
// возвращает исходный срез.
func Filter(holidays []models.Holiday, term string) []models.Holiday {
	term = strings.TrimSpace(term)
	if term == "" {
		return holidays
	}
	fold := cases.Fold()
	needle := fold.String(term)

	filtered := make([]models.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if strings.Contains(fold.String(h.LocalName), needle) || strings.Contains(fold.String(h.Name), needle) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
