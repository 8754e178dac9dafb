package gqlclient

import "fmt"

// GraphQLError is one entry of the errors list returned by the endpoint.
type GraphQLError struct {
	Message string `json:"message"`
}

// TransportError reports a non-success HTTP status from the endpoint.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("query endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// RemoteError reports a well-formed errors payload from the endpoint, even
// on a 2xx response. Errors carries the full payload for logging.
type RemoteError struct {
	Errors []GraphQLError
}

func (e *RemoteError) Error() string {
	if len(e.Errors) == 0 {
		return "query endpoint returned an empty error list"
	}
	return e.Errors[0].Message
}
