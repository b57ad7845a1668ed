// Package errors defines the closed set of error variants returned by every
// amp operation, along with retry classification and human-readable retry
// instructions.
//
// Construction is cheap and type-tagged: callers build one of the Kind
// constructors below and, where useful, chain WithContext to prepend a
// location tag without rewriting the variant.
package errors

import (
	"fmt"
	"strings"
)

// Kind identifies which variant of the tagged union an Error carries.
type Kind int

const (
	KindAPI Kind = iota
	KindRPC
	KindNetwork
	KindAuth
	KindValidation
	KindSigner
	KindTimeout
	KindIO
	KindSerde
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "Api"
	case KindRPC:
		return "Rpc"
	case KindNetwork:
		return "Network"
	case KindAuth:
		return "Auth"
	case KindValidation:
		return "Validation"
	case KindSigner:
		return "Signer"
	case KindTimeout:
		return "Timeout"
	case KindIO:
		return "Io"
	case KindSerde:
		return "Serde"
	default:
		return "Unknown"
	}
}

// Error is amp's single error type. Every fallible operation in this module
// returns one of these (or nil) rather than an arbitrary error value, so
// that callers can always consult IsRetryable/RetryInstructions.
type Error struct {
	Kind Kind

	// Api
	Status int
	Body   string

	// Rpc
	Code    int
	Message string

	// Network
	Transport string

	// Auth
	Reason string

	// Validation
	Field string
	// Reason reused for Validation's reason text.

	// Signer reuses Reason.

	// Timeout
	What string
	TxID string

	// Io
	Path string

	// Serde
	What2 string

	context []string
	cause   error
}

func (e *Error) Error() string {
	msg := e.variantMessage()
	if len(e.context) == 0 {
		return msg
	}
	return strings.Join(e.context, ": ") + ": " + msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) variantMessage() string {
	switch e.Kind {
	case KindAPI:
		if e.Body != "" {
			return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
		}
		return fmt.Sprintf("api error: status %d", e.Status)
	case KindRPC:
		return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
	case KindNetwork:
		return fmt.Sprintf("network error: %s", e.Transport)
	case KindAuth:
		return fmt.Sprintf("auth error: %s", e.Reason)
	case KindValidation:
		if e.Field != "" {
			return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
		}
		return fmt.Sprintf("validation error: %s", e.Reason)
	case KindSigner:
		return fmt.Sprintf("signer error: %s", e.Reason)
	case KindTimeout:
		if e.TxID != "" {
			return fmt.Sprintf("timeout waiting for %s (txid %s)", e.What, e.TxID)
		}
		return fmt.Sprintf("timeout waiting for %s", e.What)
	case KindIO:
		return fmt.Sprintf("io error: %s", e.Path)
	case KindSerde:
		return fmt.Sprintf("serde error: %s", e.What2)
	default:
		return "unknown error"
	}
}

// WithContext prepends a location tag to the error's context chain without
// changing its variant. Safe on a nil *Error (returns nil).
func (e *Error) WithContext(step string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.context = append([]string{step}, e.context...)
	return &cp
}

// IsRetryable reports whether the caller's retry engine should attempt this
// operation again. See spec §4.1: Rpc with transient codes, Network
// transport errors, and Api with status in {408,429,500,502,503,504} are
// retryable. Auth, Validation, Signer, and Timeout are never retryable.
func (e *Error) IsRetryable() bool {
	switch e.Kind {
	case KindAPI:
		switch e.Status {
		case 408, 429, 500, 502, 503, 504:
			return true
		}
		return false
	case KindNetwork:
		return true
	case KindRPC:
		return isTransientRPCCode(e.Code)
	default:
		return false
	}
}

// transientRPCCodes mirrors the subset of JSON-RPC error codes a node uses
// for conditions a caller should simply retry (node still warming up, node
// not yet connected) rather than codes that indicate a malformed request.
var transientRPCCodes = map[int]bool{
	-28: true, // RPC_IN_WARMUP
	-9:  true, // RPC_CLIENT_NOT_CONNECTED (connection not yet established)
}

func isTransientRPCCode(code int) bool {
	return transientRPCCodes[code]
}

// RetryInstructions returns a human-readable message describing how a
// caller can safely retry this operation, or "" if there is nothing useful
// to say. Timeout errors carrying a txid always name it, per spec §4.1/§4.9.
func (e *Error) RetryInstructions() string {
	switch e.Kind {
	case KindTimeout:
		if e.TxID != "" {
			return fmt.Sprintf(
				"transaction %s was broadcast; re-enter confirmation for this txid to resume the workflow",
				e.TxID,
			)
		}
		return "re-enter confirmation once the node has had more time to process the transaction"
	case KindAPI:
		if e.IsRetryable() {
			return "this call is safe to retry; the server reported a transient failure"
		}
	}
	return ""
}

// --- Constructors ---

func API(status int, body string) *Error {
	return &Error{Kind: KindAPI, Status: status, Body: body}
}

func RPC(code int, message string) *Error {
	return &Error{Kind: KindRPC, Code: code, Message: message}
}

func Network(transport string, cause error) *Error {
	return &Error{Kind: KindNetwork, Transport: transport, cause: cause}
}

func Auth(reason string) *Error {
	return &Error{Kind: KindAuth, Reason: reason}
}

func Validation(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func ValidationField(field, reason string) *Error {
	return &Error{Kind: KindValidation, Field: field, Reason: reason}
}

func Signer(reason string) *Error {
	return &Error{Kind: KindSigner, Reason: reason}
}

func Timeout(what, txid string) *Error {
	return &Error{Kind: KindTimeout, What: what, TxID: txid}
}

func IO(path string, cause error) *Error {
	return &Error{Kind: KindIO, Path: path, cause: cause}
}

func Serde(what string, cause error) *Error {
	return &Error{Kind: KindSerde, What2: what, cause: cause}
}

// WithTxContext annotates a post-broadcast error with the txid and
// distribution uuid it must always carry, per spec §4.9's failure model.
func WithTxContext(err *Error, txid, distributionUUID string) *Error {
	if err == nil {
		return nil
	}
	return err.WithContext(fmt.Sprintf("txid=%s distribution=%s", txid, distributionUUID))
}
