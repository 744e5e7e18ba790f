package checkout

import (
	"log/slog"
	"net/http"

	"github.com/David-Langat/Maktaba/app/echoServer/validation"
	checkoutsvc "github.com/David-Langat/Maktaba/service/checkout"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc checkoutsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}

// GET /v1/checkout
func (h *Controller) View(c echo.Context) error {
	view, err := h.Svc.Current(c.Request().Context(), sessionID(c))
	if err != nil {
		if checkoutsvc.Code(err) == checkoutsvc.ErrNoOpenOrder {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "nothing to check out"})
		}
		h.Log.Error("checkout view error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, view)
}

// Place order
// @Summary      Place the current order
// @Description  Validates contact details, freezes the total and marks the order placed
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        payload  body  CheckoutReq  true  "Contact details"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "validation error"
// @Failure      404  {object}  map[string]any "nothing to check out"
// @Failure      500  {object}  map[string]any
// @Router       /v1/checkout [post]
func (h *Controller) Place(c echo.Context) error {
	var req CheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Fields(err),
		})
	}

	order, err := h.Svc.Place(c.Request().Context(), sessionID(c), checkoutsvc.Contact{
		FirstName: req.FirstName,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		if checkoutsvc.Code(err) == checkoutsvc.ErrNoOpenOrder {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "nothing to check out"})
		}
		h.Log.Error("checkout place error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "thank you for your order!",
		"order":   order,
	})
}
