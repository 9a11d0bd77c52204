// Package tasksrepobridge contains HTTP route registration for Task.
package tasksrepobridge

import (
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task on group. Groups added
// with the same Repository serve the same tasks; each group's task uris
// point back into that group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(group.Prefix(), cfg.Repository)

	group.GET("/get/context", b.httpList, cfg.Middleware...)
	group.GET("/get/context/{id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/post/context", b.httpCreate, cfg.Middleware...)
	group.PUT("/put/context/{id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/delete/context/{id}", b.httpDelete, cfg.Middleware...)
}
