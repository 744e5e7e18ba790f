package book

import (
	"log/slog"
	"net/http"
	"strconv"

	catalogsvc "github.com/David-Langat/Maktaba/service/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List books
// @Summary      List books
// @Description  All books ordered by name; filter by exact category or name substring
// @Tags         books
// @Produce      json
// @Param        category  query  string  false  "exact category"
// @Param        search    query  string  false  "name substring"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/books [get]
func (h *Controller) List(c echo.Context) error {
	ctx := c.Request().Context()

	var rows []catalogsvc.Book
	var err error
	switch {
	case c.QueryParam("search") != "":
		rows, err = h.Svc.Search(ctx, c.QueryParam("search"))
	case c.QueryParam("category") != "":
		rows, err = h.Svc.ByCategory(ctx, c.QueryParam("category"))
	default:
		rows, err = h.Svc.List(ctx)
	}
	if err != nil {
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, row)
}
