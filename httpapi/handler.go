package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"otmane/userbook/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	// UserPath is the collection path of the user resource
	UserPath = "/api/user"

	maxBodySize = 1 << 20 // 1MB
)

// UserHandler serves the user resource over HTTP
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler returns a handler backed by svc
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// CreateUser handles POST /api/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, err := decodeUser(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateUser(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", UserPath+"/"+created.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

// ListUsers handles GET /api/user
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if users == nil {
		users = []*service.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/user/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, err := decodeUser(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/user/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// badRequestError is a body that could not be decoded
var errTrailingData = errors.New("unexpected data after JSON value")

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string {
	return "invalid request body: " + e.err.Error()
}

func (e *badRequestError) Unwrap() error {
	return e.err
}

// decodeUser reads a user from the body; an empty or null body yields nil
func decodeUser(w http.ResponseWriter, r *http.Request) (*service.User, error) {
	var user *service.User

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	err := decoder.Decode(&user)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, &badRequestError{err: err}
	}

	// the body must hold exactly one JSON value
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, &badRequestError{err: errTrailingData}
	}

	return user, nil
}

func (h *UserHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *service.ValidationError
		badRequestErr *badRequestError
	)

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &badRequestErr):
		writeError(w, http.StatusBadRequest, badRequestErr.Error())
	case errors.Is(err, service.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.Error().
			Err(err).
			Str("request_id", GetRequestID(r.Context())).
			Msgf("%s %s failed", r.Method, r.URL.Path)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
