package notes

import "errors"

// Note store errors
var (
	// ErrUserAlreadyExists indicates that the email is already registered
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password are deliberately reported the same way.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated indicates an operation that needs a session user
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoteNotFound indicates that no note with the id is owned by the session user
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoteInTrash indicates an operation not allowed on a trashed note
	ErrNoteInTrash = errors.New("note is in trash")

	// ErrInvalidColor indicates a color outside the palette
	ErrInvalidColor = errors.New("color is not in the palette")

	// ErrInvalidInput wraps validation failures of user supplied fields
	ErrInvalidInput = errors.New("invalid input")
)
