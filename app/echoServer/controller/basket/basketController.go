package basket

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/David-Langat/Maktaba/app/echoServer/validation"
	basketsvc "github.com/David-Langat/Maktaba/service/basket"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc basketsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}

// View basket
// @Summary      View basket
// @Description  The visitor's current basket; an open order is created on first use
// @Tags         basket
// @Produce      json
// @Success      200  {object}  basketsvc.View
// @Failure      500  {object}  map[string]any
// @Router       /v1/basket [get]
func (h *Controller) View(c echo.Context) error {
	view, err := h.Svc.Current(c.Request().Context(), sessionID(c))
	if err != nil {
		h.Log.Error("basket view error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, view)
}

// POST /v1/basket/items
func (h *Controller) AddItem(c echo.Context) error {
	var req AddItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Fields(err),
		})
	}

	view, err := h.Svc.AddItem(c.Request().Context(), sessionID(c), req.BookID)
	if err != nil {
		switch basketsvc.Code(err) {
		case basketsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case basketsvc.ErrAlreadyInBasket:
			return c.JSON(http.StatusConflict, echo.Map{"message": "item already in basket"})
		default:
			h.Log.Error("basket add error", "err", err, "book_id", req.BookID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, view)
}

// DELETE /v1/basket/items/:id
func (h *Controller) RemoveItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	view, err := h.Svc.RemoveItem(c.Request().Context(), sessionID(c), id)
	if err != nil {
		switch basketsvc.Code(err) {
		case basketsvc.ErrNotInBasket:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not in basket"})
		default:
			h.Log.Error("basket remove error", "err", err, "book_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, view)
}

// DELETE /v1/basket
func (h *Controller) Clear(c echo.Context) error {
	if err := h.Svc.Clear(c.Request().Context(), sessionID(c)); err != nil {
		h.Log.Error("basket clear error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all items deleted"})
}
