package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/catalog"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
)

// SessionHeader carries the opaque session key that identifies a cart.
const SessionHeader = "X-Session-ID"

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// respondStoreError maps store failures onto the wire: stock and membership
// problems are the client's fault, anything else is a lookup failure.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductUnavailable),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, errNotInCart):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify product")
	}
}

// sessionID returns the client-supplied session key, generating one when
// absent. The key used is always echoed back so the client can keep it.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = utils.GetUUID()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := sessionID(w, r)
	utils.RespondWithJSON(w, http.StatusOK, h.store.View(r.Context(), id))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" {
		utils.RespondWithValidationError(w, map[string]string{"productId": "Product id is required"})
		return
	}
	if input.Quantity < 1 {
		utils.RespondWithValidationError(w, map[string]string{"quantity": "Quantity must be at least 1"})
		return
	}

	id := sessionID(w, r)
	if err := h.store.Add(r.Context(), id, input.ProductID, input.Quantity); err != nil {
		respondStoreError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, h.store.View(r.Context(), id))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Quantity < 0 {
		utils.RespondWithValidationError(w, map[string]string{"quantity": "Quantity must not be negative"})
		return
	}

	id := sessionID(w, r)
	if err := h.store.Update(r.Context(), id, ps.ByName("productid"), input.Quantity); err != nil {
		respondStoreError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, h.store.View(r.Context(), id))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := sessionID(w, r)
	h.store.Remove(id, ps.ByName("productid"))
	utils.RespondWithJSON(w, http.StatusOK, h.store.View(r.Context(), id))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := sessionID(w, r)
	h.store.Clear(id)
	utils.RespondWithJSON(w, http.StatusOK, h.store.View(r.Context(), id))
}
