// Package japi converts heterogeneous handler return values into a single
// predictable wire format loosely modeled on the JSON:API specification.
//
// A handler may return a bare mapping, a raw string, an HTTP status code,
// an httperr.Error, a token validation error from golang-jwt, an entity
// implementing AttributeMapper, or any of those paired with side-channel
// fields via Result. Classify decides what the value means, Serialize shapes
// the envelope, and Wrapper glues both onto net/http.
package japi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/artpar/japi/adapters/idgen"
	"github.com/artpar/japi/ports"
)

// ContentType is the JSON:API media type.
const ContentType = "application/vnd.api+json"

// Version is the version stamped on resources synthesized from raw strings.
const Version = "1.0"

const defaultIndent = "  "

// Fields carries optional side-channel data accompanying a primary payload.
// Presence, not truthiness, governs envelope inclusion: an explicitly
// provided empty map is still attached, while a nil value counts as absent.
type Fields struct {
	Data     any
	Included any
	Links    any
	Meta     map[string]any

	HasData     bool
	HasIncluded bool
	HasLinks    bool
	HasMeta     bool
}

// Options control serialization. The zero value means: JSON:API media type,
// two-space indent, version stamp shown, UUID identifiers.
type Options struct {
	// ContentType overrides the response media type.
	ContentType string
	// ResourceType sets the "type" of resources synthesized from raw
	// strings. Empty means a null type.
	ResourceType string
	// Version overrides the version stamp on string-derived resources.
	Version string
	// HideVersion suppresses the version stamp.
	HideVersion bool
	// Indent overrides the JSON indentation.
	Indent string
	// IDs generates identifiers for resource objects lacking one.
	IDs ports.IDGenerator
}

func (o Options) withDefaults() Options {
	if o.ContentType == "" {
		o.ContentType = ContentType
	}
	if o.Version == "" {
		o.Version = Version
	}
	if o.Indent == "" {
		o.Indent = defaultIndent
	}
	if o.IDs == nil {
		o.IDs = idgen.UUID{}
	}
	return o
}

// Response is a fully formed HTTP response.
type Response struct {
	Status      int
	Body        []byte
	ContentType string
}

// Write writes the response to w.
func (r Response) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", r.ContentType)
	w.WriteHeader(r.Status)
	w.Write(r.Body)
}

// successDocument fixes the top-level key order: data, included, meta,
// links. Fields are any-typed so an explicitly provided empty map still
// serializes instead of being dropped by omitempty.
type successDocument struct {
	Data     any `json:"data"`
	Included any `json:"included,omitempty"`
	Meta     any `json:"meta,omitempty"`
	Links    any `json:"links,omitempty"`
}

type errorDocument struct {
	Errors []errorObject `json:"errors"`
}

type errorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Meta   any    `json:"meta,omitempty"`
}

// Serialize produces the wire form of a classified outcome. A resolved
// status in [400,600) yields an error envelope and ignores data, included
// and links; anything else yields a success envelope whose data entries pass
// through the sanitation pass. Output is deterministic: two calls with
// identical logical content match byte for byte.
func Serialize(o Outcome, f Fields, opts Options) Response {
	opts = opts.withDefaults()

	meta := f.Meta
	if len(o.Meta) > 0 {
		merged := make(map[string]any, len(meta)+len(o.Meta))
		for k, v := range meta {
			merged[k] = v
		}
		for k, v := range o.Meta {
			merged[k] = v
		}
		meta = merged
	}

	if o.Status >= 400 && o.Status < 600 {
		return errorResponse(o.Status, o.Message, meta, opts)
	}

	doc := successDocument{Data: []any{}}
	switch o.Kind {
	case KindSuccessMapping:
		doc.Data = []any{sanitise(o.Payload, opts.IDs)}
	case KindSuccessString:
		doc.Data = []any{stringResource(o.Text, opts)}
	default:
		if f.HasData && f.Data != nil {
			doc.Data = sanitiseAll(f.Data, opts.IDs)
		}
	}
	if f.HasIncluded && f.Included != nil {
		doc.Included = sanitiseAll(f.Included, opts.IDs)
	}
	if meta != nil {
		doc.Meta = meta
	}
	if f.HasLinks && f.Links != nil {
		doc.Links = f.Links
	}

	body, err := json.MarshalIndent(doc, "", opts.Indent)
	if err != nil {
		// Unserializable handler data must not surface as a formatting
		// failure; degrade to the generic internal error.
		return errorResponse(Unknown.Status, Unknown.Message, nil, opts)
	}
	return Response{Status: o.Status, Body: body, ContentType: opts.ContentType}
}

func errorResponse(status int, message string, meta map[string]any, opts Options) Response {
	eo := errorObject{Status: strconv.Itoa(status), Title: message}
	if len(meta) > 0 {
		eo.Meta = meta
	}
	body, err := json.MarshalIndent(errorDocument{Errors: []errorObject{eo}}, "", opts.Indent)
	if err != nil {
		// Meta from the handler may not be serializable; the error body
		// itself must still go out.
		eo.Meta = nil
		body, _ = json.MarshalIndent(errorDocument{Errors: []errorObject{eo}}, "", opts.Indent)
	}
	return Response{Status: status, Body: body, ContentType: opts.ContentType}
}

// sanitise guarantees a resource object carries an id. Copy-on-write and
// idempotent: an entry that already has one is returned unchanged.
func sanitise(m map[string]any, ids ports.IDGenerator) map[string]any {
	if _, ok := m["id"]; ok {
		return m
	}
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["id"] = ids.New()
	return out
}

// sanitiseAll applies sanitise across the supported data shapes: a single
// mapping, a slice of mappings, or a mixed slice. Non-mapping entries and
// unrecognized shapes pass through untouched.
func sanitiseAll(v any, ids ports.IDGenerator) any {
	switch d := v.(type) {
	case map[string]any:
		return []any{sanitise(d, ids)}
	case []map[string]any:
		out := make([]any, len(d))
		for i, m := range d {
			out[i] = sanitise(m, ids)
		}
		return out
	case []any:
		out := make([]any, len(d))
		for i, e := range d {
			if m, ok := e.(map[string]any); ok {
				out[i] = sanitise(m, ids)
			} else {
				out[i] = e
			}
		}
		return out
	}
	return v
}

// stringResource synthesizes the single resource object for a raw string
// return; the string becomes attributes.body.
func stringResource(text string, opts Options) map[string]any {
	r := map[string]any{
		"id":         opts.IDs.New(),
		"type":       nil,
		"attributes": map[string]any{"body": text},
	}
	if opts.ResourceType != "" {
		r["type"] = opts.ResourceType
	}
	if !opts.HideVersion {
		r["jsonapi"] = map[string]any{"version": opts.Version}
	}
	return r
}
