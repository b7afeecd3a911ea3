package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mapstack/geoviz-cli/internal/layer"
	"github.com/mapstack/geoviz-cli/internal/render"
	"github.com/mapstack/geoviz-cli/internal/viz"
)

var (
	serveMapPath string
	servePort    int
)

const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>geoviz</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html,body,#map{height:100%;margin:0}</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map');
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png').addTo(map);
fetch('/map.geojson').then(r => r.json()).then(function (fc) {
  var layer = L.geoJSON(fc, {
    pointToLayer: function (f, latlng) {
      return L.circleMarker(latlng, {color: f.properties['marker-color'], radius: 6});
    },
    style: function (f) {
      return {color: f.properties['stroke'], fillColor: f.properties['fill'], weight: f.properties['stroke-width']};
    }
  }).addTo(map);
  map.fitBounds(layer.getBounds());
});
</script>
</body>
</html>`

// renderBodies renders the whole map once, plus one collection per layer
// for the per-layer endpoints. The document is static for the lifetime of
// the server, so everything is rendered up front.
func renderBodies(ctx context.Context, v *viz.Visualizer) ([]byte, map[string][]byte, error) {
	var buf bytes.Buffer
	if err := v.Render(ctx, render.NewGeoJSON(&buf)); err != nil {
		return nil, nil, err
	}

	perLayer := make(map[string][]byte, len(v.Layers()))
	for i, l := range v.Layers() {
		var lb bytes.Buffer
		r := render.NewGeoJSON(&lb)
		if err := r.BeginMap(l.Extents()); err != nil {
			return nil, nil, err
		}

		var err error
		switch typed := l.(type) {
		case *layer.PointLayer:
			err = r.DrawPoints(typed, i+1)
		case *layer.ShapeLayer:
			err = r.DrawShapes(typed, i+1)
		}
		if err != nil {
			return nil, nil, eris.Wrapf(err, "render layer %s", l.LayerName())
		}
		if err := r.Finish(); err != nil {
			return nil, nil, err
		}
		perLayer[strings.ToLower(l.LayerName())] = lb.Bytes()
	}

	return buf.Bytes(), perLayer, nil
}

// buildMux wires the preview routes around pre-rendered GeoJSON bodies.
func buildMux(geojsonBody []byte, perLayer map[string][]byte) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"layers": len(perLayer),
		})
	})

	mux.HandleFunc("GET /map.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(geojsonBody)
	})

	mux.HandleFunc("GET /layers/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := strings.ToLower(strings.TrimSuffix(r.PathValue("name"), ".geojson"))
		body, ok := perLayer[name]
		if !ok {
			http.Error(w, `{"error":"unknown layer"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(indexPage))
	})

	return mux
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a rendered map document over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		v, err := buildSession(ctx, serveMapPath)
		if err != nil {
			return err
		}

		combined, perLayer, err := renderBodies(ctx, v)
		if err != nil {
			return err
		}
		mux := buildMux(combined, perLayer)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveMapPath, "map", "", "map document (YAML)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.MarkFlagRequired("map")
	rootCmd.AddCommand(serveCmd)
}
