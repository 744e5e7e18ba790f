package echoServer

import (
	"github.com/David-Langat/Maktaba/app/echoServer/controller/basket"
	"github.com/David-Langat/Maktaba/app/echoServer/controller/book"
	"github.com/David-Langat/Maktaba/app/echoServer/controller/checkout"

	"github.com/labstack/echo/v4"
)

type C struct {
	Book     *book.Controller
	Basket   *basket.Controller
	Checkout *checkout.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1", VisitorSession())

	// Catalog
	v1.GET("/books", c.Book.List)
	v1.GET("/books/:id", c.Book.Detail)

	// Basket
	v1.GET("/basket", c.Basket.View)
	v1.POST("/basket/items", c.Basket.AddItem)
	v1.DELETE("/basket/items/:id", c.Basket.RemoveItem)
	v1.DELETE("/basket", c.Basket.Clear)

	// Checkout
	v1.GET("/checkout", c.Checkout.View)
	v1.POST("/checkout", c.Checkout.Place)
}
