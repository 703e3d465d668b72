// Package keepalive periodically pings a list of URLs so that idle hosted
// instances are not put to sleep.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/config"
)

const requestTimeout = 10 * time.Second

// Result is the outcome of pinging one endpoint.
type Result struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (r Result) OK() bool {
	return r.Error == "" && r.StatusCode < http.StatusBadRequest
}

type Pinger struct {
	enabled   bool
	endpoints []string
	interval  time.Duration
	client    *http.Client
}

func New(cfg config.KeepAliveConfig) *Pinger {
	return &Pinger{
		enabled:   cfg.Enabled,
		endpoints: cfg.Endpoints,
		interval:  cfg.Interval,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

func (p *Pinger) Enabled() bool { return p.enabled }

// PingAll runs one round. Nothing is sent while the pinger is disabled.
// Failures are logged and reported, never returned as errors.
func (p *Pinger) PingAll(ctx context.Context) []Result {
	results := make([]Result, 0, len(p.endpoints))
	if !p.enabled {
		return results
	}

	log.Printf("🔔 Starting keep-alive ping to %d service(s)", len(p.endpoints))
	for _, endpoint := range p.endpoints {
		res := p.ping(ctx, endpoint)
		if res.OK() {
			log.Printf("✅ Successfully pinged: %s (%d)", endpoint, res.StatusCode)
		} else {
			log.Printf("⚠️ Failed to ping %s: %s", endpoint, res.describe())
		}
		results = append(results, res)
	}
	return results
}

func (r Result) describe() string {
	if r.Error != "" {
		return r.Error
	}
	return fmt.Sprintf("status %d", r.StatusCode)
}

func (p *Pinger) ping(ctx context.Context, endpoint string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Endpoint: endpoint, Error: err.Error()}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Endpoint: endpoint, Error: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return Result{Endpoint: endpoint, StatusCode: resp.StatusCode}
}

// Start pings every interval until ctx is cancelled. It returns immediately
// when the pinger is disabled.
func (p *Pinger) Start(ctx context.Context) {
	if !p.enabled || p.interval <= 0 {
		log.Println("⏸️ Keep-alive disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Printf("⏳ Keep-alive every %s to %d endpoint(s)", p.interval, len(p.endpoints))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PingAll(ctx)
		}
	}
}
