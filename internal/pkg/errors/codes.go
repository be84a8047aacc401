package errors

import "net/http"

// One sentinel per error kind. Handlers pass these (or WithMessage copies)
// up to utils.SendError, which maps StatusCode onto the response.
var (
	ErrNotFound = New(
		"NotFound",
		"The requested resource was not found",
		http.StatusNotFound,
	)

	ErrInvalidInput = New(
		"InvalidInput",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseUnavailable = New(
		"DatabaseUnavailable",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrRemoteService = New(
		"RemoteServiceError",
		"Upstream geoprocessing service failed",
		http.StatusInternalServerError,
	)

	ErrRemoteTimeout = New(
		"RemoteTimeout",
		"Upstream geoprocessing service timed out",
		http.StatusGatewayTimeout,
	)

	ErrGeometry = New(
		"GeometryError",
		"Geometry operation failed",
		http.StatusInternalServerError,
	)

	ErrConfiguration = New(
		"ConfigurationError",
		"Service is misconfigured",
		http.StatusInternalServerError,
	)

	ErrNotAcceptable = New(
		"NotAcceptable",
		"Requested format is not supported",
		http.StatusNotAcceptable,
	)

	ErrInternal = New(
		"Internal",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
