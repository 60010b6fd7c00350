package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Messages containing a %s verb are formatted with the details passed to NewError.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Malformed JSON body.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Appointment Errors
	ErrInvalidService:       {Code: ErrInvalidService, Message: "Invalid service selected.", Status: http.StatusBadRequest},
	ErrInvalidDate:          {Code: ErrInvalidDate, Message: "Please provide a valid date.", Status: http.StatusBadRequest},
	ErrInvalidTimeSlot:      {Code: ErrInvalidTimeSlot, Message: "Invalid time slot selected.", Status: http.StatusBadRequest},
	ErrInvalidStatus:        {Code: ErrInvalidStatus, Message: "Invalid status.", Status: http.StatusBadRequest},
	ErrInvalidAppointmentID: {Code: ErrInvalidAppointmentID, Message: "Invalid appointment ID.", Status: http.StatusBadRequest},
	ErrSlotConflict:         {Code: ErrSlotConflict, Message: "This time slot is already booked. Please select another time.", Status: http.StatusBadRequest},
	ErrInvalidTransition:    {Code: ErrInvalidTransition, Message: "Cannot change an appointment from %s to %s.", Status: http.StatusBadRequest},
	ErrAppointmentNotFound:  {Code: ErrAppointmentNotFound, Message: "Appointment not found.", Status: http.StatusNotFound},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrAdminRequired:      {Code: ErrAdminRequired, Message: "Access denied. Admin role required.", Status: http.StatusForbidden},
	ErrAccessDenied:       {Code: ErrAccessDenied, Message: "You can only manage your own appointments.", Status: http.StatusForbidden},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in.", Status: http.StatusBadRequest},
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Username must be 3-50 letters, digits or underscores.", Status: http.StatusBadRequest},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between 6 and 72 characters.", Status: http.StatusBadRequest},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Please provide a valid email.", Status: http.StatusBadRequest},
	ErrMissingField:       {Code: ErrMissingField, Message: "%s is required.", Status: http.StatusBadRequest},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username or email is already registered.", Status: http.StatusConflict},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrFieldTooLong:       {Code: ErrFieldTooLong, Message: "%s must be at most %d characters.", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
