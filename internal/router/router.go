package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskloop/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, sessionGate Middleware, loginLimiter Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", loginLimiter(handlers.Auth.Login))
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/auth/me", sessionGate(handlers.Auth.Me))

	// Protected routes
	r.GET("/api/v1/tasks", sessionGate(handlers.Task.ListTasks))
	r.POST("/api/v1/tasks", sessionGate(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", sessionGate(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", sessionGate(handlers.Task.UpdateTask))
	r.PATCH("/api/v1/tasks/{id}/status", sessionGate(handlers.Task.UpdateTaskStatus))
	r.DELETE("/api/v1/tasks/{id}", sessionGate(handlers.Task.DeleteTask))

	return r
}
