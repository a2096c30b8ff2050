package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/unrolled/render"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
)

// Config carries the web-layer settings that come from the environment.
type Config struct {
	// FantasyProsKey is the fallback rankings-provider key used when the
	// request carries neither an X-FP-Key header nor an fp_key cookie.
	FantasyProsKey string
	// Proxies lists path prefixes forwarded verbatim to other deployments.
	Proxies []ProxyRule
}

type Server struct {
	server *http.Server
}

func NewServer(port int, ctrl controller.C, cfg Config) (*Server, error) {
	rnd := render.New()
	router := getRouter(ctrl, rnd, cfg)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}
