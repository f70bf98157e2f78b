package page

import (
	"context"
	"io"

	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/models"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
	"github.com/magabrotheeeer/holiday-board/internal/view"
)

// Service описывает операции страницы праздников.
type Service interface {
	Countries(ctx context.Context) ([]models.CountryOption, error)
	Snapshot(ctx context.Context, sid string) (board.Snapshot, error)
	SelectCountry(ctx context.Context, sid, code string) (board.Snapshot, error)
	ApplyFilter(ctx context.Context, sid, term string) (board.Snapshot, error)
	ApplySort(ctx context.Context, sid string, mode board.SortMode) (board.Snapshot, error)
	Reset(ctx context.Context, sid string) error
	Year() int
	Locale() language.Tag
}

// Renderer рендерит модель страницы.
type Renderer interface {
	Render(w io.Writer, p view.Page) error
}
