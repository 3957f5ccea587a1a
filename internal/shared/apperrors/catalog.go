package apperrors

// Catalog holds every user-visible error message keyed by stable code. Core
// logic references codes only; wording changes here never touch the core.
var Catalog = map[string]string{
	"INVALID_OPEN_CLOSE_TIME": "opening hour must be before closing hour",
	"INVALID_DATE":            "dates are required and must be after the current date",
	"INVALID_OPEN_CLOSE_DATE": "opening date cannot be after closing date",
	"INVALID_RANGE":           "start date cannot be after end date",
	"INVALID_AUDI":            "the requested auditorium id is not present",
	"INVALID_LANGUAGE_CHOICE": "movie is not available in the selected language",
	"INVALID_TYPE_CHOICE":     "movie is not available in the selected format",
	"INVALID_SLOT":            "the requested slot is not available",
	"SAME_PASSWORD":           "old and new password cannot be the same",
	"INCORRECT_PASSWORD":      "old password is incorrect",
	"INADEQUATE_SEATS":        "requested number of seats are not available",
	"DUPLICATE_SLOT":          "a slot already exists for that auditorium, date and hour",
	"ALREADY_EXISTS":          "duplicate exists",
	"NOT_FOUND":               "detail not found",
	"FORBIDDEN":               "admin rights are required for this operation",
	"UNAUTHORIZED":            "authentication required",
	"INVALID_CREDENTIALS":     "invalid credentials",
	"INTERNAL":                "internal error",
}
