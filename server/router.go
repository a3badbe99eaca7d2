package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"buildings-server/metrics"
)

// BuildingsHandler is the set of endpoints the router exposes.
type BuildingsHandler interface {
	GetScene(w http.ResponseWriter, r *http.Request)
	GetBuffer(w http.ResponseWriter, r *http.Request)
	GetPreview(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	buildingsHandler BuildingsHandler
	router           *mux.Router
	apiPrefix        string
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	buildingsHandler BuildingsHandler,
	router *mux.Router,
	apiPrefix string) *Router {
	return &Router{
		buildingsHandler: buildingsHandler,
		router:           router,
		apiPrefix:        apiPrefix,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(RequestIDMiddleware, AccessLogMiddleware)

	api := r.router.PathPrefix(r.apiPrefix).Subrouter()
	// expects ?method=radius&lat=..&lon=..&radius=..
	//      or ?method=bbox&lowerLeftLat=..&lowerLeftLon=..&upperRightLat=..&upperRightLon=..
	//      or ?method=osgrid&osgridref=..
	// plus draw=1 to allow generation
	api.HandleFunc("/buildings.gltf", r.buildingsHandler.GetScene).Methods("GET")
	api.HandleFunc("/buildings.bin", r.buildingsHandler.GetBuffer).Methods("GET")
	api.HandleFunc("/buildings.html", r.buildingsHandler.GetPreview).Methods("GET")

	r.router.HandleFunc("/ping", r.buildingsHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", metrics.Handler()).Methods("GET")
}
