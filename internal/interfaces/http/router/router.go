package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a set of routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router owns the /api/<version> group and the registrars mounted on it
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

// WithMiddleware adds handlers that run on every API route, after the
// engine-wide middleware
func WithMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) { r.middleware = append(r.middleware, middleware...) }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars; nothing is mounted until Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/"+r.apiVersion, r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one resource before they are mounted.
// Routes keep their declaration order, which matters for static segments
// such as /products/search that sit beside /products/:id.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use adds middleware shared by every route and subgroup of dg
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle adds a route for an arbitrary method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, handlers...)
}

func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, handlers...)
}

func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// Group nests a new group under dg's prefix
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range dg.children {
		child.RegisterRoutes(group)
	}
}
