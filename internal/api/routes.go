// Package api is the conversion API façade (C6): a thin Fiber adapter
// between the HTTP surface and the job manager, converter, and file store
// underneath it. It carries no business logic of its own.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adverant/nexus/pdf2md/internal/filestore"
	"github.com/adverant/nexus/pdf2md/internal/jobs"
)

// Server wires together the collaborators the HTTP surface dispatches
// into.
type Server struct {
	App     *fiber.App
	Store   *filestore.Store
	Manager *jobs.Manager
	APIKeys map[string]bool
}

// New builds a Fiber app with CORS, request logging, API-key
// authentication, and the routes from the conversion API's wire contract.
func New(store *filestore.Store, manager *jobs.Manager, apiKeys []string, corsOrigins []string) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 200 << 20,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrDefault(corsOrigins, "*"),
	}))

	keySet := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		keySet[k] = true
	}

	s := &Server{App: app, Store: store, Manager: manager, APIKeys: keySet}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	guarded := app.Group("/file", s.requireAPIKey)
	guarded.Post("/upload", s.handleUpload)
	guarded.Get("/info/:file_id", s.handleInfo)
	guarded.Get("/list", s.handleList)
	guarded.Delete("/delete/:file_id", s.handleDelete)
	guarded.Post("/convert2md", s.handleConvert)
	guarded.Get("/convert2md/result/:task_id", s.handleConvertResult)

	return s
}

// requireAPIKey rejects requests without a configured X-API-Key. An empty
// allow-list disables the check, matching a single-tenant deployment.
func (s *Server) requireAPIKey(c *fiber.Ctx) error {
	if len(s.APIKeys) == 0 {
		return c.Next()
	}
	key := c.Get("X-API-Key")
	if key == "" || !s.APIKeys[key] {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status_code": fiber.StatusUnauthorized,
			"detail":      "invalid or missing X-API-Key",
		})
	}
	return c.Next()
}

func joinOrDefault(origins []string, fallback string) string {
	if len(origins) == 0 {
		return fallback
	}
	out := origins[0]
	for _, o := range origins[1:] {
		out += "," + o
	}
	return out
}
