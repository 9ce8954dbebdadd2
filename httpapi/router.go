// Package httpapi serves the user resource over HTTP/JSON.
package httpapi

import (
	"net/http"

	"otmane/userbook/service"

	"github.com/gorilla/mux"
)

// NewRouter returns the HTTP handler for the user API
func NewRouter(svc *service.UserService) http.Handler {
	h := NewUserHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc(UserPath, h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc(UserPath, h.ListUsers).Methods(http.MethodGet)
	r.HandleFunc(UserPath, h.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc(UserPath+"/{id}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc(UserPath+"/{id}", h.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return RequestID(Logging(Recover(r)))
}
