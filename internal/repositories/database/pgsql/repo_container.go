package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bookRepo := newPgxBookRepository(dbPool)
	copyRepo := newPgxCopyRepository(dbPool)
	readerRepo := newPgxReaderRepository(dbPool)
	librarianRepo := newPgxLibrarianRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	fineRepo := newPgxFineRepository(dbPool)
	hallRepo := newPgxHallRepository(dbPool)
	visitRepo := newPgxVisitRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BookRepo:      bookRepo,
		CopyRepo:      copyRepo,
		ReaderRepo:    readerRepo,
		LibrarianRepo: librarianRepo,
		LoanRepo:      loanRepo,
		FineRepo:      fineRepo,
		HallRepo:      hallRepo,
		VisitRepo:     visitRepo,
	}
}
