// Package domain holds the closed catalog of business errors.
// Every failure a service can report is one of the values below, so the
// HTTP layer can map them to problem responses without string matching.
package domain

// Error is a business failure with a stable machine-readable code and the
// HTTP status it maps to at the API boundary.
type Error struct {
	Code   string // stable identifier, e.g. "booking.id.notfound"
	Detail string // human hint for the client
	Status int    // HTTP status the handler should respond with
}

func (e *Error) Error() string { return e.Code }

// Booking failures.
var (
	ErrBookingNotFound      = &Error{"booking.id.notfound", "Make sure you're entering the right booking id", 404}
	ErrCancellingPastShow   = &Error{"booking.cancelling.dateinpast", "You cannot cancel the tickets after the show has taken place.", 400}
	ErrAlreadyCancelled     = &Error{"booking.show.alreadycancelled", "You cannot cancel the booking again", 400}
	ErrShowNotAvailable     = &Error{"booking.show.unavailable", "This showtime is not available. Please refresh to get the updated shows", 404}
	ErrTimeSlotNotAvailable = &Error{"booking.timeslot.unavailable", "This show doesn't have the chosen timeslot available, kindly pick another.", 404}
	ErrSeatsNotAvailable    = &Error{"booking.timeslot.seatsunavailable", "Requested number of seats not available in this timeslot. Try another.", 404}
	ErrShowDateInPast       = &Error{"booking.showdate.isinpast", "You cannot book tickets of past shows", 400}
	ErrSeatCountInvalid     = &Error{"booking.seats.invalid", "Number of seats must be at least 1", 400}
)

// ErrBadRequest covers request bodies that cannot be decoded at all.
var ErrBadRequest = &Error{"request.body.invalid", "Malformed request body", 400}

// Movie failures.
var (
	ErrMovieNotFound = &Error{"movie.id.notfound", "Please check if specified movie id is correct.", 404}
)

// User and auth failures.
var (
	ErrUserNotFound                = &Error{"user.id.notfound", "User could not be found", 404}
	ErrAgeTooSmall                 = &Error{"user.age.tooyoung", "User age has to be at least 13 years", 403}
	ErrDateOfBirthInvalid          = &Error{"user.dateofbirth.invalid", "Date of birth cannot be in the future", 400}
	ErrNewEmailBlank               = &Error{"user.newemail.blank", "Kindly enter a valid email address", 400}
	ErrPasswordEmpty               = &Error{"user.password.empty", "Kindly enter valid password", 400}
	ErrIncorrectOldPassword        = &Error{"user.oldpassword.incorrect", "Make sure the old password is correct with proper casing", 400}
	ErrCredentialsInvalid          = &Error{"user.credentials.invalid", "Make sure the username/email and password are correct", 401}
	ErrRefreshTokenInvalid         = &Error{"user.refreshtoken.invalid", "Authenticate again!", 401}
	ErrCredentialsMissing          = &Error{"user.register.credentialsnotprovided", "Please provide a valid email and password", 400}
	ErrUserAlreadyExists           = &Error{"user.email.alreadyexists", "Try to login from another email or reset your password", 400}
	ErrPasswordPolicyNotMet        = &Error{"user.password.policynotmet", "1 Uppercase, 1 Lowercase, 1 Symbol, 1 Number", 400}
	ErrConfirmationTokenInvalid    = &Error{"user.confirmationtoken.invalid", "Make sure the token specified is correct", 400}
	ErrEmailFormatInvalid          = &Error{"user.email.formatinvalid", "Make sure you're entering the correct email address", 400}
	ErrEmailNotConfirmed           = &Error{"user.email.notconfirmed", "Please confirm your primary email address", 400}
	ErrEmailNotConfirmedForReset   = &Error{"user.email.notconfirmed", "Your email wasn't confirmed, can't authorize forgot password. Please contact support", 403}
	ErrUnconfirmedUserExists       = &Error{"user.existingemail.notconfirmed", "A user with this email already exists in the database, please confirm the email", 403}
	ErrNewEmailTaken               = &Error{"user.newemail.alreadyexists", "The requested email address is already in use", 409}
	ErrAccessTokenRequired         = &Error{"user.accesstoken.required", "A refresh token cannot be used to call the API", 401}
)
