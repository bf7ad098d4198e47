package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Profiler pushes continuous profiles to a Pyroscope server
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts CPU, heap and goroutine profiling when enabled
func NewProfiler(cfg config.TelemetryConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.ProfilingEnabled {
		return p, nil
	}
	if cfg.PyroscopeURL == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}
	if pod := os.Getenv("POD_NAME"); pod != "" {
		tags["pod"] = pod
	}

	prof, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.PyroscopeURL,
		Logger:          pyroscopeLogger{logger.Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = prof
	logger.Info("Pyroscope profiler started", zap.String("server_address", cfg.PyroscopeURL))
	return p, nil
}

// Stop is safe to call more than once
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true
	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	return nil
}

func (p *Profiler) IsEnabled() bool {
	return p.profiler != nil
}

type pyroscopeLogger struct {
	s *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
