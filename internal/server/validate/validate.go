// Package validate holds the request validation predicates shared by every
// business endpoint. Each predicate is a pure function: it inspects its input
// and either passes (nil) or fails with an HTTP status and a client-safe
// message. The endpoint pipeline runs them in a fixed order and stops at the
// first failure.
package validate

import (
	"net/http"
	"net/url"
	"strings"
)

// TokenHeader is the header carrying the client's API token.
const TokenHeader = "x-api-token"

// Error is a validation failure: the HTTP status to respond with and the
// message safe to return to the client verbatim.
type Error struct {
	Status  int
	Message string
}

// Method passes only for GET. Everything else, including an empty method,
// is a 405.
func Method(method string) *Error {
	if method != http.MethodGet {
		return &Error{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	}
	return nil
}

// Auth compares the x-api-token header against the configured token.
// An unset configured token is a deployment defect (500, not a client error).
// A missing header, a multi-valued header (rejected even if one of the values
// is correct), or any mismatch is a 401. Comparison is exact: no trimming,
// no case folding.
func Auth(headers http.Header, apiToken string) *Error {
	if apiToken == "" {
		return &Error{
			Status:  http.StatusInternalServerError,
			Message: "Server configuration error: API token not set",
		}
	}

	values := headers.Values(TokenHeader)
	if len(values) != 1 || values[0] != apiToken {
		return &Error{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized: Invalid or missing API token",
		}
	}

	return nil
}

// Params checks that every required query parameter is present. A parameter
// is missing when it is absent or carries a single empty value; repeating it
// makes it present no matter what the values hold. All missing names are
// collected, in the declared order, so the client sees the full list at once.
// An empty required list always passes.
func Params(query url.Values, required []string) *Error {
	var missing []string
	for _, name := range required {
		values := query[name]
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &Error{
			Status:  http.StatusBadRequest,
			Message: "Missing required parameters: " + strings.Join(missing, ", "),
		}
	}

	return nil
}
