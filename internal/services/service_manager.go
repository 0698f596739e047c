package services

import (
	"log/slog"

	"github.com/SAP-F-2025/trust-service/internal/cache"
	"github.com/SAP-F-2025/trust-service/internal/events"
	"github.com/SAP-F-2025/trust-service/internal/policy"
	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"github.com/SAP-F-2025/trust-service/internal/sources"
	"github.com/SAP-F-2025/trust-service/internal/trust"
	"github.com/SAP-F-2025/trust-service/internal/verifier"
)

// ServiceManager bundles the service layer behind one constructor.
type ServiceManager interface {
	Trust() TrustService
	Source() SourceService
	Publishing() PublishingService
}

type serviceManager struct {
	trustService      TrustService
	sourceService     SourceService
	publishingService PublishingService
}

// NewServiceManager wires the services with shared infrastructure.
func NewServiceManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	backend verifier.ScoringBackend,
	logger *slog.Logger,
) ServiceManager {
	engine := trust.NewEngine()
	pol := policy.NewPolicy()
	calculator := sources.NewCalculator(sources.NewYouTubeLinkValidator())

	return &serviceManager{
		trustService:      NewTrustService(repo, engine, publisher, cacheService, logger),
		sourceService:     NewSourceService(calculator, publisher, logger),
		publishingService: NewPublishingService(repo, pol, backend, publisher, cacheService, logger),
	}
}

func (m *serviceManager) Trust() TrustService           { return m.trustService }
func (m *serviceManager) Source() SourceService         { return m.sourceService }
func (m *serviceManager) Publishing() PublishingService { return m.publishingService }
