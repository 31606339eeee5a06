package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	yoastmeta "github.com/BumpyClock/go-yoastmeta"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML site config file")
		baseURL    = flag.String("base", "", "WordPress base URL (overrides config)")
		slug       = flag.String("slug", "", "print metadata for the post with this slug")
		pageURL    = flag.String("url", "", "print metadata scraped from this page")
		head       = flag.Bool("head", false, "print rendered head tags instead of JSON")
		serveAddr  = flag.String("serve", "", "serve metadata over HTTP on this address")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *baseURL)
	if err != nil {
		logrus.Fatalf("[yoastmeta] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *serveAddr != "":
		if cfg.WordPressURL == "" {
			logrus.Fatal("[yoastmeta] -serve needs a WordPress URL (-base or config)")
		}
		if err := serve(ctx, *serveAddr, yoastmeta.NewClientFromConfig(cfg)); err != nil {
			logrus.Fatalf("[yoastmeta] server: %v", err)
		}
	case *slug != "":
		if cfg.WordPressURL == "" {
			logrus.Fatal("[yoastmeta] -slug needs a WordPress URL (-base or config)")
		}
		m, err := yoastmeta.NewClientFromConfig(cfg).PostMetadata(ctx, *slug)
		if err != nil {
			logrus.Fatalf("[yoastmeta] post %s: %v", *slug, err)
		}
		if err := write(os.Stdout, m, *head); err != nil {
			logrus.Fatal(err)
		}
	case *pageURL != "":
		m, err := yoastmeta.PageMetadata(ctx, *pageURL, cfg.Defaults)
		if err != nil {
			logrus.Fatalf("[yoastmeta] page %s: %v", *pageURL, err)
		}
		if err := write(os.Stdout, m, *head); err != nil {
			logrus.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func loadConfig(path, baseURL string) (yoastmeta.SiteConfig, error) {
	var (
		cfg yoastmeta.SiteConfig
		err error
	)
	if path != "" {
		cfg, err = yoastmeta.LoadSiteConfig(path)
	} else {
		cfg, err = yoastmeta.ParseSiteConfig(nil)
	}
	if err != nil {
		return yoastmeta.SiteConfig{}, err
	}
	if baseURL != "" {
		cfg.WordPressURL = baseURL
	}
	return cfg, nil
}

func write(w io.Writer, m yoastmeta.Metadata, head bool) error {
	if head {
		out, err := yoastmeta.RenderHead(m)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func serve(ctx context.Context, addr string, client *yoastmeta.Client) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(client),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("[yoastmeta] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(client *yoastmeta.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Get("/posts/{slug}/metadata", func(w http.ResponseWriter, r *http.Request) {
		m, ok := postMetadata(w, r, client)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m)
	})
	r.Get("/posts/{slug}/head", func(w http.ResponseWriter, r *http.Request) {
		m, ok := postMetadata(w, r, client)
		if !ok {
			return
		}
		out, err := yoastmeta.RenderHead(m)
		if err != nil {
			logrus.Errorf("[yoastmeta] render head: %v", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, out)
	})
	return r
}

func postMetadata(w http.ResponseWriter, r *http.Request, client *yoastmeta.Client) (yoastmeta.Metadata, bool) {
	slug := chi.URLParam(r, "slug")
	m, err := client.PostMetadata(r.Context(), slug)
	switch {
	case errors.Is(err, yoastmeta.ErrNotFound):
		http.NotFound(w, r)
		return yoastmeta.Metadata{}, false
	case err != nil:
		logrus.Errorf("[yoastmeta] post %s: %v", slug, err)
		http.Error(w, fmt.Sprintf("fetch post %s failed", slug), http.StatusBadGateway)
		return yoastmeta.Metadata{}, false
	}
	return m, true
}
