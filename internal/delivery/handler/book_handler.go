package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/domain/apperrors"
)

type BookHandler struct {
	catalogService interfaces.CatalogService
}

func NewBookHandler(catalogService interfaces.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

func bookIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("Invalid book id")
	}
	return id, nil
}

func (h *BookHandler) Create(c echo.Context) error {
	var createCommand command.CreateBookCommand
	if err := c.Bind(&createCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}
	createCommand.OwnerId = currentUserID(c)

	result, err := h.catalogService.CreateBook(c.Request().Context(), &createCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *BookHandler) Update(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var updateCommand command.UpdateBookCommand
	if err := c.Bind(&updateCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}
	updateCommand.BookId = bookID
	updateCommand.CallerId = currentUserID(c)

	result, err := h.catalogService.UpdateBook(c.Request().Context(), &updateCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BookHandler) Delete(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.catalogService.DeleteBook(c.Request().Context(), bookID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}

func (h *BookHandler) Get(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.catalogService.GetBook(c.Request().Context(), bookID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BookHandler) List(c echo.Context) error {
	result, err := h.catalogService.ListBooks(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BookHandler) ListMine(c echo.Context) error {
	result, err := h.catalogService.ListMyBooks(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BookHandler) ListAvailable(c echo.Context) error {
	result, err := h.catalogService.ListAvailableBooks(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
