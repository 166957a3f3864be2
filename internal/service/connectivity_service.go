package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/lshigami/QuizMaster/config"
	"github.com/rs/zerolog/log"
)

// ConnectivityService answers "are we online?" without doing network I/O.
// State is fed by host notifications (SetOnline) and, optionally, a slow
// background probe.
type ConnectivityService interface {
	IsOnline(ctx context.Context) bool
	SetOnline(online bool)
	Subscribe(fn func(online bool))
}

// ConnectivityMonitor is the default ConnectivityService. The initial state
// is online.
type ConnectivityMonitor struct {
	mu        sync.RWMutex
	online    bool
	listeners []func(bool)

	probeURL      string
	probeInterval time.Duration
	httpClient    *http.Client
}

func NewConnectivityService(cfg *config.Config) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		online:        true,
		probeURL:      cfg.Connectivity.ProbeURL,
		probeInterval: cfg.Connectivity.ProbeInterval,
		httpClient:    &http.Client{Timeout: cfg.Connectivity.ProbeTimeout},
	}
}

func (s *ConnectivityMonitor) IsOnline(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// SetOnline records the new state and notifies subscribers on a transition.
// Listeners run synchronously on the caller's goroutine.
func (s *ConnectivityMonitor) SetOnline(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if online {
		log.Info().Msg("Connectivity restored")
	} else {
		log.Warn().Msg("Connectivity lost")
	}
	for _, fn := range listeners {
		fn(online)
	}
}

func (s *ConnectivityMonitor) Subscribe(fn func(online bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// RunProbe checks the probe URL every probeInterval until ctx is done.
// It returns immediately when probing is disabled.
func (s *ConnectivityMonitor) RunProbe(ctx context.Context) {
	if s.probeURL == "" || s.probeInterval <= 0 {
		log.Info().Msg("Connectivity probe disabled, relying on host notifications")
		return
	}

	ticker := time.NewTicker(s.probeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			online := s.probe(ctx)
			if ctx.Err() != nil {
				return
			}
			s.SetOnline(online)
		}
	}
}

func (s *ConnectivityMonitor) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.probeURL, nil)
	if err != nil {
		log.Error().Err(err).Str("url", s.probeURL).Msg("Invalid connectivity probe URL")
		return s.IsOnline(ctx)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("Connectivity probe failed")
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
