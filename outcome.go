package japi

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artpar/japi/httperr"
)

// Kind identifies the classification of a handler return value.
type Kind int

// Classification kinds. Every handler return value maps to exactly one.
const (
	// KindUnknown is the fallback for values no other kind recognizes.
	KindUnknown Kind = iota
	// KindSuccessMapping is a bare mapping payload.
	KindSuccessMapping
	// KindSuccessString is a raw string payload.
	KindSuccessString
	// KindFrameworkError is an httperr.Error value.
	KindFrameworkError
	// KindAuthError is a token validation error from golang-jwt.
	KindAuthError
	// KindStatusOnly is a bare HTTP status code.
	KindStatusOnly
)

// String returns the kind name, usable as a metrics label.
func (k Kind) String() string {
	switch k {
	case KindSuccessMapping:
		return "success_mapping"
	case KindSuccessString:
		return "success_string"
	case KindFrameworkError:
		return "framework_error"
	case KindAuthError:
		return "auth_error"
	case KindStatusOnly:
		return "status_only"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of inspecting a handler return value,
// prior to serialization. Exactly one kind is active.
type Outcome struct {
	Kind    Kind
	Status  int
	Message string

	// Payload holds the mapping for KindSuccessMapping.
	Payload map[string]any
	// Text holds the string for KindSuccessString.
	Text string
	// Meta holds error metadata injected during classification
	// (the "JWT error" detail for KindAuthError).
	Meta map[string]any
}

// Unknown is the fallback outcome: every value the classifier does not
// recognize serializes as a generic Internal Server Error. Anyone adding a
// new recognized family must keep this fallback intact.
var Unknown = Outcome{
	Kind:    KindUnknown,
	Status:  http.StatusInternalServerError,
	Message: http.StatusText(http.StatusInternalServerError),
}

// Result pairs a primary object with side-channel fields. Handlers return
// it when they need to attach data, included, links or meta to a status.
type Result struct {
	Obj any
	Ext map[string]any
}

// With pairs a primary object with side-channel fields.
func With(obj any, ext map[string]any) Result {
	return Result{Obj: obj, Ext: ext}
}

// tokenErrors is the static table of golang-jwt sentinel errors making up
// the auth-token error family. Matching is by errors.Is, so wrapped and
// joined parse errors are recognized too.
var tokenErrors = []error{
	jwt.ErrInvalidKey,
	jwt.ErrInvalidKeyType,
	jwt.ErrHashUnavailable,
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenRequiredClaimMissing,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenExpired,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidSubject,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenInvalidId,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrSignatureInvalid,
}

// Classify inspects a handler return value and produces an Outcome plus any
// side-channel fields. Classification is total: every input maps to some
// outcome, falling back to Unknown.
//
// A two-element pair (Result, [2]any, or []any of length 2 whose second
// element is a map) is split into a primary object and side-channel fields.
// Recognized side-channel keys are "data", "included", "links" and "meta";
// anything else is ignored.
func Classify(returned any) (Outcome, Fields) {
	obj, fields := split(returned)
	out := classifyObject(obj)

	// A non-error status paired with a single mapping under "data" is the
	// common "status plus payload" handler shape; fold it into a mapping
	// outcome so the payload keeps the explicit status.
	if out.Kind == KindStatusOnly && out.Status < 400 && fields.HasData {
		if m, ok := fields.Data.(map[string]any); ok {
			out = Outcome{Kind: KindSuccessMapping, Status: out.Status, Payload: m}
			fields.Data = nil
			fields.HasData = false
		}
	}
	return out, fields
}

func split(returned any) (any, Fields) {
	switch v := returned.(type) {
	case Result:
		return v.Obj, fieldsFromExt(v.Ext)
	case [2]any:
		if ext, ok := v[1].(map[string]any); ok {
			return v[0], fieldsFromExt(ext)
		}
	case []any:
		if len(v) == 2 {
			if ext, ok := v[1].(map[string]any); ok {
				return v[0], fieldsFromExt(ext)
			}
		}
	}
	return returned, Fields{}
}

func fieldsFromExt(ext map[string]any) Fields {
	var f Fields
	if v, ok := ext["data"]; ok {
		f.Data, f.HasData = v, true
	}
	if v, ok := ext["included"]; ok {
		f.Included, f.HasIncluded = v, true
	}
	if v, ok := ext["links"]; ok {
		f.Links, f.HasLinks = v, true
	}
	if v, ok := ext["meta"]; ok {
		if m, ok := v.(map[string]any); ok {
			f.Meta, f.HasMeta = m, true
		}
	}
	return f
}

func classifyObject(obj any) Outcome {
	switch v := obj.(type) {
	case map[string]any:
		// Bare mapping: success, message cleared.
		return Outcome{Kind: KindSuccessMapping, Status: http.StatusOK, Payload: v}
	case string:
		return Outcome{Kind: KindSuccessString, Status: http.StatusOK, Text: v}
	case int:
		// Only registered status codes classify; an arbitrary int is not a
		// status, even when it falls in the valid range.
		if v >= 100 && v < 600 {
			if text := http.StatusText(v); text != "" {
				return Outcome{Kind: KindStatusOnly, Status: v, Message: text}
			}
		}
	case AttributeMapper:
		return Outcome{Kind: KindSuccessMapping, Status: http.StatusOK, Payload: ToResource(v)}
	case error:
		return classifyError(v)
	}
	return Unknown
}

func classifyError(err error) Outcome {
	var he *httperr.Error
	if errors.As(err, &he) {
		return Outcome{Kind: KindFrameworkError, Status: he.Code, Message: he.Description}
	}
	for _, sentinel := range tokenErrors {
		if errors.Is(err, sentinel) {
			return Outcome{
				Kind:    KindAuthError,
				Status:  httperr.Unauthorized.Code,
				Message: httperr.Unauthorized.Description,
				Meta:    map[string]any{"JWT error": err.Error()},
			}
		}
	}
	return Unknown
}
