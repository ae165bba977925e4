package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	"github.com/hnnsly/library-core/internal/dto"
)

// --- Mock BookRepository ---
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

// --- Mock CopyRepository ---
type MockCopyRepository struct {
	mock.Mock
}

func (m *MockCopyRepository) SaveCopy(ctx context.Context, copy domain.BookCopy) error {
	args := m.Called(ctx, copy)
	return args.Error(0)
}

func (m *MockCopyRepository) FindCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error) {
	args := m.Called(ctx, copyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookCopy), args.Error(1)
}

func (m *MockCopyRepository) FindCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error) {
	args := m.Called(ctx, copyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookCopy), args.Error(1)
}

func (m *MockCopyRepository) ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookCopy), args.Error(1)
}

func (m *MockCopyRepository) CountAvailableCopies(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *MockCopyRepository) CompareAndSetStatus(ctx context.Context, copyID string, expected, next domain.CopyStatus, updatedBy string) error {
	args := m.Called(ctx, copyID, expected, next, updatedBy)
	return args.Error(0)
}

// --- Mock ReaderRepository ---
type MockReaderRepository struct {
	mock.Mock
}

func (m *MockReaderRepository) SaveReader(ctx context.Context, reader domain.Reader) error {
	args := m.Called(ctx, reader)
	return args.Error(0)
}

func (m *MockReaderRepository) FindReaderByID(ctx context.Context, readerID string) (*domain.Reader, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reader), args.Error(1)
}

func (m *MockReaderRepository) FindReaderByTicket(ctx context.Context, ticketNumber string) (*domain.Reader, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reader), args.Error(1)
}

func (m *MockReaderRepository) ListReaders(ctx context.Context, limit int, offset int) ([]domain.Reader, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reader), args.Error(1)
}

func (m *MockReaderRepository) SetReaderActive(ctx context.Context, readerID string, active bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, readerID, active, updatedBy, now)
	return args.Error(0)
}

// --- Mock LibrarianRepository ---
type MockLibrarianRepository struct {
	mock.Mock
}

func (m *MockLibrarianRepository) SaveLibrarian(ctx context.Context, librarian domain.Librarian) error {
	args := m.Called(ctx, librarian)
	return args.Error(0)
}

func (m *MockLibrarianRepository) FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	args := m.Called(ctx, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}

func (m *MockLibrarianRepository) FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindOpenLoanByCopy(ctx context.Context, copyID string) (*domain.Loan, error) {
	args := m.Called(ctx, copyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) CountOpenLoansByReader(ctx context.Context, readerID string) (int, error) {
	args := m.Called(ctx, readerID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListOpenLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListOverdueLoans(ctx context.Context, asOf time.Time, limit int, offset int) ([]domain.Loan, error) {
	args := m.Called(ctx, asOf, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListRenewalsByLoan(ctx context.Context, loanID string) ([]domain.LoanRenewal, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRenewal), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) RenewLoan(ctx context.Context, renewal domain.LoanRenewal) error {
	args := m.Called(ctx, renewal)
	return args.Error(0)
}

func (m *MockLoanRepository) CloseLoan(ctx context.Context, loanID string, returnDate time.Time) error {
	args := m.Called(ctx, loanID, returnDate)
	return args.Error(0)
}

// --- Mock FineRepository ---
type MockFineRepository struct {
	mock.Mock
}

func (m *MockFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineRepository) ListUnpaidFines(ctx context.Context, limit int, offset int) ([]domain.Fine, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fine), args.Error(1)
}

func (m *MockFineRepository) ListFinesByReader(ctx context.Context, readerID string) ([]domain.Fine, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fine), args.Error(1)
}

func (m *MockFineRepository) OutstandingTotal(ctx context.Context, readerID string) (int64, error) {
	args := m.Called(ctx, readerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFineRepository) SaveFine(ctx context.Context, fine domain.Fine) error {
	args := m.Called(ctx, fine)
	return args.Error(0)
}

func (m *MockFineRepository) MarkFinePaid(ctx context.Context, fineID string, paidAt time.Time) error {
	args := m.Called(ctx, fineID, paidAt)
	return args.Error(0)
}

// --- Mock HallRepository ---
type MockHallRepository struct {
	mock.Mock
}

func (m *MockHallRepository) SaveHall(ctx context.Context, hall domain.ReadingHall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *MockHallRepository) FindHallByID(ctx context.Context, hallID string) (*domain.ReadingHall, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReadingHall), args.Error(1)
}

func (m *MockHallRepository) ListHalls(ctx context.Context) ([]domain.ReadingHall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReadingHall), args.Error(1)
}

// --- Mock VisitRepository ---
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) FindLatestVisit(ctx context.Context, readerID, hallID string) (*domain.HallVisit, error) {
	args := m.Called(ctx, readerID, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HallVisit), args.Error(1)
}

func (m *MockVisitRepository) CurrentOccupancy(ctx context.Context, hallID string) (domain.Occupancy, error) {
	args := m.Called(ctx, hallID)
	return args.Get(0).(domain.Occupancy), args.Error(1)
}

func (m *MockVisitRepository) ListVisitsByHall(ctx context.Context, hallID string) ([]domain.HallVisit, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HallVisit), args.Error(1)
}

func (m *MockVisitRepository) ListRecentVisits(ctx context.Context, before time.Time, beforeSeq int64, limit int) ([]domain.HallVisit, error) {
	args := m.Called(ctx, before, beforeSeq, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HallVisit), args.Error(1)
}

func (m *MockVisitRepository) DailyStats(ctx context.Context, hallID string, dayStart, dayEnd time.Time) (portsrepo.HallDailyStats, error) {
	args := m.Called(ctx, hallID, dayStart, dayEnd)
	return args.Get(0).(portsrepo.HallDailyStats), args.Error(1)
}

func (m *MockVisitRepository) AppendVisit(ctx context.Context, visit domain.HallVisit) (*domain.HallVisit, error) {
	args := m.Called(ctx, visit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HallVisit), args.Error(1)
}

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateBook(ctx context.Context, req dto.CreateBookRequest, librarianID string) (*domain.Book, error) {
	args := m.Called(ctx, req, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockCatalogService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockCatalogService) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockCatalogService) AddCopy(ctx context.Context, bookID string, req dto.CreateCopyRequest, librarianID string) (*domain.BookCopy, error) {
	args := m.Called(ctx, bookID, req, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookCopy), args.Error(1)
}

func (m *MockCatalogService) GetCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error) {
	args := m.Called(ctx, copyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookCopy), args.Error(1)
}

func (m *MockCatalogService) GetCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error) {
	args := m.Called(ctx, copyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookCopy), args.Error(1)
}

func (m *MockCatalogService) ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookCopy), args.Error(1)
}

func (m *MockCatalogService) AvailableCopies(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogService) MarkIssued(ctx context.Context, copyID string, librarianID string) error {
	args := m.Called(ctx, copyID, librarianID)
	return args.Error(0)
}

func (m *MockCatalogService) MarkReturned(ctx context.Context, copyID string, condition domain.CopyCondition, librarianID string) error {
	args := m.Called(ctx, copyID, condition, librarianID)
	return args.Error(0)
}

func (m *MockCatalogService) MarkLost(ctx context.Context, copyID string, librarianID string) error {
	args := m.Called(ctx, copyID, librarianID)
	return args.Error(0)
}
