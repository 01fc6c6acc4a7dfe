package http

import (
	"booksale/internal/entity"
	"booksale/internal/usecase"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

type SellerHandler struct {
	repo usecase.SellerRepository
}

func NewSellerHandler(repo usecase.SellerRepository) *SellerHandler {
	return &SellerHandler{repo: repo}
}

type createSellerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	EMail     string `json:"e_mail" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,max=255"`
}

type updateSellerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	EMail     string `json:"e_mail" validate:"required,email,max=100"`
}

// sellerIDFromRequest parses the {id} path segment. A non-numeric id can
// never reference a seller, so callers treat false as not found.
func sellerIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Register handles POST /seller/
func (h *SellerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req createSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.EMail = strings.TrimSpace(req.EMail)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	seller := &entity.Seller{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		EMail:     req.EMail,
		Password:  req.Password,
	}
	if err := h.repo.Create(r.Context(), seller); err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			JSONError(w, http.StatusConflict, "EMAIL_TAKEN", "E-mail already registered", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSON(w, http.StatusCreated, seller)
}

// List handles GET /seller/
func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.repo.List(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSON(w, http.StatusOK, sellers)
}

// GetByID handles GET /seller/{id}
func (h *SellerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := sellerIDFromRequest(r)
	if !ok {
		NotFound(w)
		return
	}

	seller, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			NotFound(w)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSON(w, http.StatusOK, seller)
}

// Update handles PUT /seller/{id}. Password and books are never touched here.
func (h *SellerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := sellerIDFromRequest(r)
	if !ok {
		NotFound(w)
		return
	}

	var req updateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.EMail = strings.TrimSpace(req.EMail)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	seller, err := h.repo.Update(r.Context(), id, req.FirstName, req.LastName, req.EMail)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			NotFound(w)
		case errors.Is(err, usecase.ErrEmailTaken):
			JSONError(w, http.StatusConflict, "EMAIL_TAKEN", "E-mail already registered", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	JSON(w, http.StatusOK, seller)
}

// Delete handles DELETE /seller/{id}. The store removes all owned books in
// the same transaction.
func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sellerIDFromRequest(r)
	if !ok {
		NotFound(w)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			NotFound(w)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	NoContent(w)
}
