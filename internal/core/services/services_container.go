package services

import (
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider
// and returns the container the handlers consume.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	catalog := NewCatalogService(repos.BookRepo, repos.CopyRepo)

	return &portssvc.ServiceContainer{
		Catalog:     catalog,
		Circulation: NewCirculationService(catalog, repos.LoanRepo, repos.ReaderRepo, repos.FineRepo, cfg.Policy),
		Fine:        NewFineService(repos.FineRepo, repos.ReaderRepo),
		Occupancy:   NewOccupancyService(repos.HallRepo, repos.VisitRepo, repos.ReaderRepo),
		Reader:      NewReaderService(repos.ReaderRepo),
		Auth:        NewAuthService(repos.LibrarianRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
