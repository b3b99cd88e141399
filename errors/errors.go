// Package errors provides standardized error handling patterns for
// components-go: error classification for retry/fatal/invalid decisions,
// and the Kind/DIError pair carrying the engine's own error taxonomy
// (spec §7) with the offending resource attached for context.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeswr/components-go/pkg/retry"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Component lifecycle errors
	ErrAlreadyStarted = errors.New("component already started")
	ErrNotStarted     = errors.New("component not started")
	ErrAlreadyStopped = errors.New("component already stopped")
	ErrShuttingDown   = errors.New("component is shutting down")

	// Connection and networking errors
	ErrNoConnection       = errors.New("no connection available")
	ErrConnectionLost     = errors.New("connection lost")
	ErrConnectionTimeout  = errors.New("connection timeout")
	ErrSubscriptionFailed = errors.New("subscription failed")

	// Data processing errors
	ErrInvalidData    = errors.New("invalid data format")
	ErrDataCorrupted  = errors.New("data corrupted")
	ErrChecksumFailed = errors.New("checksum validation failed")
	ErrParsingFailed  = errors.New("parsing failed")

	// Storage and persistence errors
	ErrStorageFull        = errors.New("storage full")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrKeyNotFound        = errors.New("key not found")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMissingConfig  = errors.New("missing required configuration")
	ErrConfigNotFound = errors.New("configuration not found")

	// Resource errors
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrRateLimited       = errors.New("rate limited")
	ErrQuotaExceeded     = errors.New("quota exceeded")

	// Circuit breaker and retry errors
	ErrCircuitOpen        = errors.New("circuit breaker open")
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")
	ErrRetryTimeout       = errors.New("retry timeout exceeded")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and should be retried
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}

	if errors.Is(err, ErrConnectionTimeout) ||
		errors.Is(err, ErrConnectionLost) ||
		errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	transientPatterns := []string{
		"timeout",
		"connection",
		"network",
		"temporary",
		"unavailable",
		"busy",
		"retry",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	if errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrDataCorrupted) ||
		errors.Is(err, ErrStorageFull) ||
		errors.Is(err, ErrResourceExhausted) ||
		errors.Is(err, ErrQuotaExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	fatalPatterns := []string{
		"fatal",
		"panic",
		"corrupted",
		"invalid config",
		"missing config",
		"out of memory",
		"disk full",
	}

	for _, pattern := range fatalPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	if errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrParsingFailed) ||
		errors.Is(err, ErrChecksumFailed) {
		return true
	}

	return false
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorTransient
	}

	if IsTransient(err) {
		return ErrorTransient
	}
	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}

	return ErrorTransient
}

// newClassified creates a new classified error
// This is an internal helper - use WrapTransient(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// RetryConfig defines configuration for retry operations
type RetryConfig struct {
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	RetryableErrors []error
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffFactor:   2.0,
		RetryableErrors: nil,
	}
}

// ShouldRetry determines if an error should be retried based on config
func (rc RetryConfig) ShouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= rc.MaxRetries {
		return false
	}

	if !IsTransient(err) {
		return false
	}

	if len(rc.RetryableErrors) > 0 {
		for _, retryableErr := range rc.RetryableErrors {
			if errors.Is(err, retryableErr) {
				return true
			}
		}
		return false
	}

	return true
}

// ToRetryConfig converts the errors package RetryConfig to the retry
// package's Config type for framework consistency.
func (rc RetryConfig) ToRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  rc.MaxRetries + 1,
		InitialDelay: rc.InitialDelay,
		MaxDelay:     rc.MaxDelay,
		Multiplier:   rc.BackoffFactor,
		AddJitter:    true,
	}
}

// BackoffDelay calculates the delay for a retry attempt using framework logic
func (rc RetryConfig) BackoffDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return rc.InitialDelay
	}

	delay := rc.InitialDelay
	for i := 0; i < attempt; i++ {
		delay = time.Duration(float64(delay) * rc.BackoffFactor)
		if delay > rc.MaxDelay {
			delay = rc.MaxDelay
			break
		}
	}

	return delay
}

// Kind enumerates the engine's own error taxonomy, distinct from the
// ambient ErrorClass above: a Kind names *what went wrong in the
// instantiation pipeline*, while ErrorClass names *how a caller should
// react* (retry, fail fast, stop). A DIError carries both.
type Kind string

const (
	// KindInvalidComponent is raised by the registry on a non-recognised component type IRI.
	KindInvalidComponent Kind = "InvalidComponent"
	// KindRegistryFrozen is raised by any registration call after Finalize.
	KindRegistryFrozen Kind = "RegistryFrozen"
	// KindInvalidConstructorArguments is raised when constructorArguments is not an RDF list.
	KindInvalidConstructorArguments Kind = "InvalidConstructorArguments"
	// KindMalformedObjectMapping is raised when an inheritance target lacks the required shape.
	KindMalformedObjectMapping Kind = "MalformedObjectMapping"
	// KindInvalidConfig is raised by validate_raw_config.
	KindInvalidConfig Kind = "InvalidConfig"
	// KindAmbiguousComponentTypes is raised when a config's types resolve to != 1 component.
	KindAmbiguousComponentTypes Kind = "AmbiguousComponentTypes"
	// KindUnknownComponent is raised by instantiate_manually on an unregistered IRI.
	KindUnknownComponent Kind = "UnknownComponent"
	// KindUndefinedVariable is raised when a Variable's name is absent from settings.variables.
	KindUndefinedVariable Kind = "UndefinedVariable"
	// KindOverrideIndexOutOfRange is raised by ListInsertAt/override steps on a bad index.
	KindOverrideIndexOutOfRange Kind = "OverrideIndexOutOfRange"
	// KindMalformedMappingKey is raised when a fields-mapping key is not a Literal.
	KindMalformedMappingKey Kind = "MalformedMappingKey"
)

// DIError is the engine's structured error, carrying the offending
// resource's IRI (where meaningful) and the field/reason that triggered
// it, per spec §7. It always carries an ErrorClass, but IsTransient,
// IsFatal and IsInvalid do not read it: they recognise only
// *ClassifiedError values, the sentinel errors, and message patterns.
type DIError struct {
	Kind     Kind
	Resource string // IRI of the offending resource, empty if not applicable
	Field    string // predicate or parameter name, empty if not applicable
	Reason   string
	Class    ErrorClass
	Err      error // optional underlying cause
}

// Error implements the error interface.
func (e *DIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Resource != "" {
		fmt.Fprintf(&b, " resource=%s", e.Resource)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%s", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *DIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DIError with the same Kind, so callers
// can write errors.Is(err, errors.NewDIError(errors.KindRegistryFrozen, ...)).
func (e *DIError) Is(target error) bool {
	var other *DIError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// NewDIError constructs a DIError of the given kind, defaulting to the
// Invalid class (most DI-pipeline errors reject a single malformed
// config rather than the whole process).
func NewDIError(kind Kind, resource, field, reason string) *DIError {
	return &DIError{Kind: kind, Resource: resource, Field: field, Reason: reason, Class: ErrorInvalid}
}

// NewDIErrorWrap is like NewDIError but wraps an underlying cause.
func NewDIErrorWrap(kind Kind, resource, field, reason string, cause error) *DIError {
	return &DIError{Kind: kind, Resource: resource, Field: field, Reason: reason, Class: ErrorInvalid, Err: cause}
}

// InvalidComponent builds the InvalidComponent DIError.
func InvalidComponent(resource, reason string) *DIError {
	return NewDIError(KindInvalidComponent, resource, "", reason)
}

// RegistryFrozen builds the RegistryFrozen DIError. Synchronous, never cached.
func RegistryFrozen(resource string) *DIError {
	return NewDIError(KindRegistryFrozen, resource, "", "registry is frozen; call Finalize before the first instantiate")
}

// InvalidConstructorArguments builds the InvalidConstructorArguments DIError.
func InvalidConstructorArguments(resource, reason string) *DIError {
	return NewDIError(KindInvalidConstructorArguments, resource, "constructorArguments", reason)
}

// MalformedObjectMapping builds the MalformedObjectMapping DIError.
func MalformedObjectMapping(resource, reason string) *DIError {
	return NewDIError(KindMalformedObjectMapping, resource, "", reason)
}

// InvalidConfig builds the InvalidConfig DIError, carrying the offending field for context.
func InvalidConfig(resource, field, reason string) *DIError {
	return NewDIError(KindInvalidConfig, resource, field, reason)
}

// AmbiguousComponentTypes builds the AmbiguousComponentTypes DIError.
func AmbiguousComponentTypes(resource, reason string) *DIError {
	return NewDIError(KindAmbiguousComponentTypes, resource, "rdf:type", reason)
}

// UnknownComponent builds the UnknownComponent DIError.
func UnknownComponent(resource string) *DIError {
	return NewDIError(KindUnknownComponent, resource, "", "no component is registered under this IRI")
}

// UndefinedVariable builds the UndefinedVariable DIError.
func UndefinedVariable(name string) *DIError {
	return NewDIError(KindUndefinedVariable, "", name, "variable is not bound in settings.variables")
}

// OverrideIndexOutOfRange builds the OverrideIndexOutOfRange DIError.
func OverrideIndexOutOfRange(resource, field string, index, length int) *DIError {
	return NewDIError(KindOverrideIndexOutOfRange, resource, field,
		fmt.Sprintf("index %d out of range for list of length %d", index, length))
}

// MalformedMappingKey builds the MalformedMappingKey DIError.
func MalformedMappingKey(resource, reason string) *DIError {
	return NewDIError(KindMalformedMappingKey, resource, "", reason)
}

// IsKind reports whether err is a *DIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *DIError
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == kind
}
