package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/holiday-board/internal/http/response"
)

func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
