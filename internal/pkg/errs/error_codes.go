/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both inside the
server and in the JSON envelope returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Appointment Errors
const (
	// ErrInvalidService indicates a service outside the clinic's offering.
	ErrInvalidService = 2101

	// ErrInvalidDate indicates an appointment date that is not a calendar date.
	ErrInvalidDate = 2102

	// ErrInvalidTimeSlot indicates a time slot outside the fixed slot menu.
	ErrInvalidTimeSlot = 2103

	// ErrInvalidStatus indicates an unknown appointment status.
	ErrInvalidStatus = 2104

	// ErrInvalidAppointmentID indicates a malformed appointment id in the path.
	ErrInvalidAppointmentID = 2105

	// ErrSlotConflict indicates that the requested date and time slot are already booked.
	ErrSlotConflict = 2201

	// ErrInvalidTransition indicates a status change the lifecycle does not allow.
	ErrInvalidTransition = 2202

	// ErrAppointmentNotFound indicates that the appointment id does not resolve.
	ErrAppointmentNotFound = 2203
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a missing, malformed, or expired bearer token.
	ErrUnauthorized = 3001

	// ErrAdminRequired indicates that the endpoint is restricted to administrators.
	ErrAdminRequired = 3002

	// ErrAccessDenied indicates that the caller neither owns the resource nor is an administrator.
	ErrAccessDenied = 3003

	// ErrAlreadyLoggedIn indicates that a signed-in caller tried to register or log in again.
	ErrAlreadyLoggedIn = 3004

	// ErrInvalidUsername indicates a username that does not match the allowed format.
	ErrInvalidUsername = 3005

	// ErrInvalidPassword indicates a password outside the allowed length.
	ErrInvalidPassword = 3006

	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = 3007

	// ErrMissingField indicates that a required field was empty.
	ErrMissingField = 3008

	// ErrUserAlreadyExists indicates that the username or email is already registered.
	ErrUserAlreadyExists = 3009

	// ErrUserNotFound indicates that the user account does not exist.
	ErrUserNotFound = 3010

	// ErrInvalidCredentials indicates a login with an unknown email or wrong password.
	ErrInvalidCredentials = 3011

	// ErrFieldTooLong indicates a text field longer than its stored column.
	ErrFieldTooLong = 3012
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
