package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mchmarny/radial-menu/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return l
}

func waitRunning(t *testing.T, s Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !s.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServeAndShutdown(t *testing.T) {
	l := listen(t)
	base := "http://" + l.Addr().String()

	reg := prometheus.NewRegistry()
	metric.NewEventCounter(reg).Increment("open")

	started := make(chan struct{})
	srv := New(
		WithListener(l),
		WithRegistry(reg),
		WithPrometheusMetrics(),
		WithSimpleHealth(),
		WithHandler("/menu", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<svg/>"))
		})),
		WithBackground(func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx) }()

	waitRunning(t, srv)
	<-started

	if code, body := get(t, base+"/healthz"); code != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", code, body)
	}
	if _, body := get(t, base+"/menu"); body != "<svg/>" {
		t.Errorf("menu = %q", body)
	}
	if _, body := get(t, base+"/metrics"); !strings.Contains(body, `radial_menu_events_total{event="open"} 1`) {
		t.Errorf("metrics missing counter:\n%s", body)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.IsRunning() {
		t.Error("still running after shutdown")
	}
}

func TestBackgroundFailureStopsServer(t *testing.T) {
	boom := errors.New("loop failed")
	srv := New(
		WithListener(listen(t)),
		WithBackground(func(context.Context) error { return boom }),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(context.Background()) }()

	select {
	case err := <-errc:
		if !errors.Is(err, boom) {
			t.Fatalf("Serve() = %v, want %v", err, boom)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after background failure")
	}
}

func TestTLSMissingCertificate(t *testing.T) {
	srv := New(
		WithListener(listen(t)),
		WithTLS(TLSConfig{CertFile: "missing.pem", KeyFile: "missing.key"}),
	)
	if err := srv.Serve(context.Background()); err == nil || !strings.Contains(err.Error(), "TLS certificate") {
		t.Fatalf("Serve() = %v, want certificate error", err)
	}
}
