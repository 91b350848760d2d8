package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/matt-g-everett/animtx/motion"
	"github.com/matt-g-everett/animtx/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxProjectSize bounds the body of a save request.
const maxProjectSize = 8 << 20

// Api serves projects from a store and the editor client files.
type Api struct {
	store     store.Service
	clientDir string
	router    chi.Router
}

// NewApi creates an Api over svc serving static files from clientDir.
func NewApi(svc store.Service, clientDir string) *Api {
	a := new(Api)
	a.store = svc
	a.clientDir = clientDir

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", a.listProjects)
		r.Get("/{name}", a.loadProject)
		r.Put("/{name}", a.saveProject)
	})
	r.Handle("/*", http.FileServer(http.Dir(clientDir)))
	a.router = r
	return a
}

// ServeHTTP implements http.Handler.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	log.Infof("Listening on %s...", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Api) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrTimeout):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	default:
		log.Errorf("Store request failed: %v", err)
		http.Error(w, "store failure", http.StatusInternalServerError)
	}
}

func (a *Api) listProjects(w http.ResponseWriter, r *http.Request) {
	names, err := a.store.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func (a *Api) loadProject(w http.ResponseWriter, r *http.Request) {
	data, err := a.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (a *Api) saveProject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := io.ReadAll(io.LimitReader(r.Body, maxProjectSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) > 0 {
		if _, err := motion.DecodeState(data); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	if err := a.store.Save(r.Context(), name, data); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
