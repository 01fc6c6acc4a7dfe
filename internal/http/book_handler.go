package http

import (
	"booksale/internal/entity"
	"booksale/internal/usecase"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// defaultBookPages is used when a listing omits count_pages.
const defaultBookPages = 150

type BookHandler struct {
	repo usecase.BookRepository
}

func NewBookHandler(repo usecase.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

type createBookRequest struct {
	Title      string `json:"title" validate:"required,max=50"`
	Author     string `json:"author" validate:"required,max=100"`
	Year       int    `json:"year" validate:"required,not_old_year"`
	CountPages *int   `json:"count_pages"`
	SellerID   int64  `json:"seller_id" validate:"required"`
}

// Create handles POST /book/. The year rule runs before any store access, so
// a rejected listing is never partially persisted.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	pages := defaultBookPages
	if req.CountPages != nil {
		pages = *req.CountPages
	}

	book := &entity.Book{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Pages:    pages,
		SellerID: req.SellerID,
	}
	if err := h.repo.Create(r.Context(), book); err != nil {
		if errors.Is(err, usecase.ErrSellerNotFound) {
			JSONError(w, http.StatusConflict, "SELLER_NOT_FOUND", "Referenced seller does not exist", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSON(w, http.StatusCreated, book)
}
