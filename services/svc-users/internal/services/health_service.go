package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
)

const defaultCheckTimeout = 3 * time.Second

type (
	dependency struct {
		name     string
		pinger   ports.Pinger
		critical bool
	}

	// HealthService pings the registered dependencies concurrently. A failing
	// critical dependency marks the service down, any other failure degrades it.
	HealthService struct {
		version      string
		timeout      time.Duration
		dependencies []dependency
	}

	HealthOption func(*HealthService)
)

func WithCriticalDependency(name string, pinger ports.Pinger) HealthOption {
	return func(s *HealthService) {
		s.dependencies = append(s.dependencies, dependency{name: name, pinger: pinger, critical: true})
	}
}

func WithDependency(name string, pinger ports.Pinger) HealthOption {
	return func(s *HealthService) {
		s.dependencies = append(s.dependencies, dependency{name: name, pinger: pinger})
	}
}

func WithCheckTimeout(timeout time.Duration) HealthOption {
	return func(s *HealthService) {
		s.timeout = timeout
	}
}

func NewHealthService(version string, opts ...HealthOption) *HealthService {
	svc := &HealthService{
		version: version,
		timeout: defaultCheckTimeout,
	}

	for _, opt := range opts {
		opt(svc)
	}

	sort.SliceStable(svc.dependencies, func(i, j int) bool {
		return svc.dependencies[i].name < svc.dependencies[j].name
	})

	return svc
}

func (s *HealthService) Health(ctx context.Context) (*model.HealthReport, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]model.DependencyCheck, len(s.dependencies))
		status = model.HealthStatusOK
	)

	for _, dep := range s.dependencies {
		wg.Add(1)

		go func() {
			defer wg.Done()

			check := s.check(ctx, dep.pinger)

			mu.Lock()
			defer mu.Unlock()

			checks[dep.name] = check

			if check.Status == model.DependencyStatusDown {
				if dep.critical {
					status = model.HealthStatusDown
				} else if status == model.HealthStatusOK {
					status = model.HealthStatusDegraded
				}
			}
		}()
	}

	wg.Wait()

	return &model.HealthReport{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Checks:    checks,
	}, nil
}

func (s *HealthService) check(ctx context.Context, pinger ports.Pinger) model.DependencyCheck {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := pinger.Ping(ctx)
	latency := time.Since(start)

	check := model.DependencyCheck{
		Status:      model.DependencyStatusUp,
		LatencyMs:   uint64(latency.Milliseconds()),
		Message:     "ok",
		LastChecked: time.Now().UTC(),
	}

	if err != nil {
		check.Status = model.DependencyStatusDown
		check.Message = "unreachable"
		check.Error = err.Error()
	}

	return check
}
