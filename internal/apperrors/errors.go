package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// The errors below are business-rule refusals from the circulation and
// occupancy services, not infrastructure faults. Handlers map them onto
// HTTP status codes with errors.Is; nothing retries them automatically.

// ErrCopyUnavailable indicates the book copy is not in the available status.
var ErrCopyUnavailable = errors.New("book copy is not available")

// ErrInvalidTransition indicates a copy status change the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid copy status transition")

// ErrReaderInactive indicates the reader's registration has been deactivated.
var ErrReaderInactive = errors.New("reader is not active")

// ErrReaderOverLimit indicates the reader already holds the maximum number of open loans.
var ErrReaderOverLimit = errors.New("reader has reached the open loan limit")

// ErrUnpaidFinesBlock indicates the reader's outstanding fines exceed the issuing threshold.
var ErrUnpaidFinesBlock = errors.New("reader has unpaid fines above the allowed threshold")

// ErrLoanNotOpen indicates an operation on a loan that has already been closed.
var ErrLoanNotOpen = errors.New("loan is not open")

// ErrLoanOverdue indicates a renewal attempt on a loan that is already past its due date.
var ErrLoanOverdue = errors.New("loan is overdue")

// ErrRenewalLimitReached indicates the loan has been renewed the maximum number of times.
var ErrRenewalLimitReached = errors.New("loan renewal limit reached")

// ErrAlreadyReturned indicates a return attempt on a loan that was already closed.
var ErrAlreadyReturned = errors.New("loan has already been returned")

// ErrInvalidAmount indicates a fine amount that is not a non-negative number of minor units.
var ErrInvalidAmount = errors.New("fine amount must be non-negative")

// ErrAlreadyPaid indicates a payment attempt on a fine that is already settled.
var ErrAlreadyPaid = errors.New("fine has already been paid")

// ErrHallFull indicates the reading hall has no free seats left.
var ErrHallFull = errors.New("reading hall is full")

// ErrAlreadyInHall indicates an entry for a reader whose latest event in the hall is already an entry.
var ErrAlreadyInHall = errors.New("reader is already in the hall")

// ErrNotInHall indicates an exit for a reader who is not currently in the hall.
var ErrNotInHall = errors.New("reader is not in the hall")

// ErrUnauthorized indicates failed authentication. Login never reveals
// whether the username or the password was wrong.
var ErrUnauthorized = errors.New("invalid credentials")
