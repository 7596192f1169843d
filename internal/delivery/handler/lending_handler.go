package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/domain/entities"
)

type LendingHandler struct {
	lendingService interfaces.LendingService
}

func NewLendingHandler(lendingService interfaces.LendingService) *LendingHandler {
	return &LendingHandler{lendingService: lendingService}
}

func requestIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("Invalid request id")
	}
	return id, nil
}

func (h *LendingHandler) RequestBorrow(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var requestCommand command.RequestBorrowCommand
	if err := c.Bind(&requestCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}
	requestCommand.BookId = bookID
	requestCommand.RequesterId = currentUserID(c)

	result, err := h.lendingService.RequestBorrow(c.Request().Context(), &requestCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *LendingHandler) RespondToRequest(c echo.Context) error {
	requestID, err := requestIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var respondCommand command.RespondToRequestCommand
	if err := c.Bind(&respondCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}
	respondCommand.RequestId = requestID
	respondCommand.OwnerId = currentUserID(c)
	if key := c.Request().Header.Get("Idempotency-Key"); key != "" {
		respondCommand.IdempotencyKey = key
	}

	result, err := h.lendingService.RespondToRequest(c.Request().Context(), &respondCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *LendingHandler) CancelRequest(c echo.Context) error {
	requestID, err := requestIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.lendingService.CancelRequest(c.Request().Context(), requestID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Borrow request cancelled"})
}

func (h *LendingHandler) ReturnBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.lendingService.ReturnBook(c.Request().Context(), bookID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book returned successfully"})
}

func (h *LendingHandler) ListReceivedRequests(c echo.Context) error {
	status := entities.RequestStatus(c.QueryParam("status"))

	result, err := h.lendingService.ListReceivedRequests(c.Request().Context(), currentUserID(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *LendingHandler) ListSentRequests(c echo.Context) error {
	result, err := h.lendingService.ListSentRequests(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *LendingHandler) ListBorrowedBooks(c echo.Context) error {
	result, err := h.lendingService.ListBorrowedBooks(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *LendingHandler) GetUserStats(c echo.Context) error {
	result, err := h.lendingService.GetUserStats(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
