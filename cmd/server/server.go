package server

import (
	"context"
	"net/http"
	"time"

	appkafka "example.com/yatube/internal/broker"
	"example.com/yatube/internal/cache"
	"example.com/yatube/internal/feed"
	config "example.com/yatube/internal/init"
	"example.com/yatube/internal/logger"
	"example.com/yatube/internal/media"
	"example.com/yatube/internal/middleware"
	"example.com/yatube/internal/store"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logg = logger.New()

// Server wires the blog HTTP surface: public feed pages, authenticated
// post/comment/follow writes, auth endpoints and media serving.
type Server struct {
	store       store.StoreInterface
	kafkaWriter appkafka.KafkaWriter
	pages       cache.PageCache
	media       *media.Storage
	feeds       *feed.Assembler
	metrics     *middleware.Metrics

	minTextLen int
	cacheTTL   time.Duration
	admins     map[string]bool
}

// New assembles a Server from its dependencies and behavior settings.
func New(st store.StoreInterface, writer appkafka.KafkaWriter, pages cache.PageCache,
	mediaStore *media.Storage, cfg *config.Config) *Server {

	admins := make(map[string]bool, len(cfg.AdminUsers))
	for _, name := range cfg.AdminUsers {
		admins[name] = true
	}

	return &Server{
		store:       st,
		kafkaWriter: writer,
		pages:       pages,
		media:       mediaStore,
		feeds:       feed.New(st, cfg.PageSize),
		metrics:     middleware.InitMetrics(),
		minTextLen:  cfg.TextMinLength,
		cacheTTL:    cfg.IndexCacheTTL,
		admins:      admins,
	}
}

func (s *Server) isAdmin(username string) bool {
	return s.admins[username]
}

// Router builds the route table. Split out of Run so tests can mount the
// same routes on an httptest server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	// Public read surface
	r.HandleFunc("/", s.indexHandler).Methods("GET")
	r.HandleFunc("/groups/{slug}", s.groupHandler).Methods("GET")
	r.HandleFunc("/profiles/{username}/follow", jwtWrap(s.followHandler)).Methods("GET")
	r.HandleFunc("/profiles/{username}/unfollow", jwtWrap(s.unfollowHandler)).Methods("GET")
	r.HandleFunc("/profiles/{username}", optionalJWTWrap(s.profileHandler)).Methods("GET")
	r.HandleFunc("/posts/{post_id}/comments", jwtWrap(s.addCommentHandler)).Methods("POST")
	r.HandleFunc("/posts/{post_id}", s.postDetailHandler).Methods("GET")

	// Authenticated writes
	r.HandleFunc("/posts", jwtWrap(s.createPostHandler)).Methods("POST")
	r.HandleFunc("/posts/{post_id}", jwtWrap(s.editPostHandler)).Methods("PUT")
	r.HandleFunc("/posts/{post_id}", jwtWrap(s.deletePostHandler)).Methods("DELETE")
	r.HandleFunc("/follow", jwtWrap(s.followIndexHandler)).Methods("GET")

	// Administrative group management
	r.HandleFunc("/groups", jwtWrap(s.createGroupHandler)).Methods("POST")
	r.HandleFunc("/groups/{slug}", jwtWrap(s.deleteGroupHandler)).Methods("DELETE")

	// Auth flow
	r.HandleFunc("/auth/signup", s.signupHandler).Methods("POST")
	r.HandleFunc("/auth/login", s.loginHandler).Methods("GET", "POST")

	// Uploaded images
	if s.media != nil {
		r.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(s.media.Root()))))
	}

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.Use(s.metrics.CountRequests)

	return r
}

func jwtWrap(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.JWTAuth(h).ServeHTTP(w, r)
	}
}

func optionalJWTWrap(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.OptionalJWTAuth(h).ServeHTTP(w, r)
	}
}

// Run starts the HTTP server and blocks until ctx is canceled, then
// shuts down gracefully.
func Run(ctx context.Context, s *Server, addr string) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second, // prevent slowloris attacks
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("server", "Starting HTTP server on "+addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server", "Server stopped unexpectedly", err)
		}
	}()

	<-ctx.Done()
	logg.Info("server", "Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server", "Error during server shutdown", err)
	} else {
		logg.Info("server", "Server stopped gracefully")
	}
}
