package domain

import "go.trai.ch/zerr"

var (
	// ErrFetchFailed is returned when a collection cannot be fetched and no cached copy exists.
	ErrFetchFailed = zerr.New("failed to fetch collection")

	// ErrRefreshFailed is logged when a background refresh fails. The cached copy is kept.
	ErrRefreshFailed = zerr.New("background refresh failed")

	// ErrCacheClosed is returned when a cache is used after it was closed.
	ErrCacheClosed = zerr.New("cache is closed")

	// ErrFingerprintFailed is returned when a collection cannot be serialized for fingerprinting.
	ErrFingerprintFailed = zerr.New("failed to fingerprint collection")

	// ErrUnauthorized is returned when the backend rejects the stored token.
	ErrUnauthorized = zerr.New("unauthorized, please log in again")

	// ErrRequestBuildFailed is returned when an HTTP request cannot be constructed.
	ErrRequestBuildFailed = zerr.New("failed to build request")

	// ErrRequestFailed is returned when the backend cannot be reached or answers with an error status.
	ErrRequestFailed = zerr.New("request failed")

	// ErrAPIRejected is returned when the backend answers with success=false in its envelope.
	ErrAPIRejected = zerr.New("request rejected by server")

	// ErrResponseTooLarge is returned when a response body exceeds the client's read limit.
	ErrResponseTooLarge = zerr.New("response body too large")

	// ErrDecodeFailed is returned when a response body cannot be decoded.
	ErrDecodeFailed = zerr.New("failed to decode response")

	// ErrEncodeFailed is returned when a request body cannot be encoded.
	ErrEncodeFailed = zerr.New("failed to encode request body")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = zerr.New("record not found")

	// ErrValidationFailed is returned when mutation input fails client-side validation.
	ErrValidationFailed = zerr.New("validation failed")

	// ErrMissingID is returned when an update or delete is issued without a record id.
	ErrMissingID = zerr.New("record id is required")

	// ErrTokenMissing is returned when an operation needs a token and none is stored.
	ErrTokenMissing = zerr.New("no token stored, run 'courseware auth login'")

	// ErrTokenMalformed is returned when a stored token cannot be decoded as a JWT.
	ErrTokenMalformed = zerr.New("stored token is not a valid JWT")

	// ErrStoreCreateFailed is returned when the storage directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create storage directory")

	// ErrStoreReadFailed is returned when the storage file cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read storage")

	// ErrStoreUnmarshalFailed is returned when the storage file cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal storage")

	// ErrStoreMarshalFailed is returned when the storage file cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal storage")

	// ErrStoreWriteFailed is returned when the storage file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write storage")

	// ErrStoreWatchFailed is returned when the storage file cannot be watched for changes.
	ErrStoreWatchFailed = zerr.New("failed to watch storage")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrLiveConnectFailed is returned when the live update socket cannot be opened.
	ErrLiveConnectFailed = zerr.New("failed to connect to live updates")

	// ErrLiveMessageInvalid is returned when a live update message cannot be decoded.
	ErrLiveMessageInvalid = zerr.New("invalid live update message")

	// ErrUnknownResource is returned when a resource name is not in the catalog.
	ErrUnknownResource = zerr.New("unknown resource")

	// ErrInvalidOutputMode is returned when --output names no known renderer.
	ErrInvalidOutputMode = zerr.New("output must be one of auto, tui, linear")

	// ErrMetricsServerFailed is returned when the metrics endpoint cannot be served.
	ErrMetricsServerFailed = zerr.New("metrics server failed")
)
