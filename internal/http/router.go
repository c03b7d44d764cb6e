package http

import (
	"net/http"
	"strings"
	"time"

	"jobfinder/internal/domain/user"
	"jobfinder/internal/http/handlers"
	"jobfinder/internal/http/metrics"
	httpmw "jobfinder/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	PresenceHandler    http.Handler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	UploadDir          string
	RequestTimeout     time.Duration
}

type Router struct {
	deps    RouterDependencies
	uploads http.Handler
}

// Large enough for a JSON body or a multipart upload carrying the 5MB
// resume limit enforced by the store.
const maxBodyBytes = 6 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{
		deps:    deps,
		uploads: http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))),
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// websocket upgrades hijack the connection; keep them out of the
	// timeout/body-limit chain
	if req.Method == http.MethodGet && req.URL.Path == "/ws" && r.deps.PresenceHandler != nil {
		r.deps.PresenceHandler.ServeHTTP(w, req)
		return
	}
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/uploads/"):
			r.uploads.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && segmentCount(path) == 2:
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/users") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/jobs":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/apply"):
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.JobHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.JobHandler.ListApplications)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/company":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.ListCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/me":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/decision"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.Decide)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/users/me":
		r.deps.UserHandler.Me(w, req)
		return
	case req.Method == http.MethodPut && path == "/users/me":
		r.deps.UserHandler.UpdateMe(w, req)
		return
	}

	http.NotFound(w, req)
}

func segmentCount(path string) int {
	return len(strings.Split(strings.Trim(path, "/"), "/"))
}
