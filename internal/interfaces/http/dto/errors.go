package dto

import "net/http"

// errorStatusMap maps domain error codes to HTTP status codes
var errorStatusMap = map[string]int{
	"NOT_FOUND":             http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_STATE":         http.StatusConflict,
	"FOREIGN_KEY_VIOLATION": http.StatusNotFound,
	"NOT_IMPLEMENTED":       http.StatusNotImplemented,
}

// HTTPStatusForCode translates a domain error code into an HTTP status.
// Unknown codes degrade to 500.
func HTTPStatusForCode(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
