package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/version", h.getServerVersion)

	// users
	router.Get("/users", h.listUsers)
	router.Post("/users", h.createUser)
	router.Get("/users/{userId}", h.getUser)
	router.Put("/users/{userId}", h.updateUser)
	router.Delete("/users/{userId}", h.deleteUser)
	router.Get("/users/{userId}/roles", h.listUserAssignments)
	router.Post("/users/{userId}/roles/{roleId}", h.assignRole)
	router.Delete("/users/{userId}/roles/{roleId}", h.unassignRole)

	// roles
	router.Get("/roles", h.listRoles)
	router.Post("/roles", h.createRole)
	router.Get("/roles/{roleId}", h.getRole)
	router.Put("/roles/{roleId}", h.updateRole)
	router.Delete("/roles/{roleId}", h.deleteRole)
	router.Get("/roles/{roleId}/users", h.listRoleUsers)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
