package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BookRepo      BookRepositoryFacade
	CopyRepo      CopyRepositoryFacade
	ReaderRepo    ReaderRepositoryFacade
	LibrarianRepo LibrarianRepositoryFacade
	LoanRepo      LoanRepositoryFacade
	FineRepo      FineRepositoryFacade
	HallRepo      HallRepositoryFacade
	VisitRepo     VisitRepositoryFacade
}
