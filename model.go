package japi

import "fmt"

// AttributeMapper is the capability a domain entity implements to be
// rendered as a resource object. One method is required; ToResource and
// ToLimitedResource derive the rest. An entity without the capability is
// rejected at compile time.
type AttributeMapper interface {
	// JSONAttributes returns the entity as a flat mapping of JSON-safe
	// values. "id" and "type" keys, if present, are lifted out of the
	// attributes by ToResource.
	JSONAttributes() map[string]any
}

// ToResource converts an entity to a resource object: "id" and "type" are
// extracted from the attributes mapping (the id stringified), everything
// else becomes "attributes". The entity's own mapping is never modified.
func ToResource(m AttributeMapper) map[string]any {
	attrs := m.JSONAttributes()
	rest := make(map[string]any, len(attrs))
	for k, v := range attrs {
		rest[k] = v
	}

	out := map[string]any{}
	if id, ok := rest["id"]; ok {
		delete(rest, "id")
		if s := stringify(id); s != "" {
			out["id"] = s
		}
	}
	if typ, ok := rest["type"]; ok {
		delete(rest, "type")
		if s := stringify(typ); s != "" {
			out["type"] = s
		}
	}
	out["attributes"] = rest
	return out
}

// ToLimitedResource is a redaction view of ToResource for unauthenticated
// or limited callers: every attribute value is nulled while keys are
// preserved, so the API shape is stable regardless of auth level. The id is
// nulled too unless revealID is true.
func ToLimitedResource(m AttributeMapper, revealID bool) map[string]any {
	out := ToResource(m)
	if _, ok := out["id"]; ok && !revealID {
		out["id"] = nil
	}
	attrs := out["attributes"].(map[string]any)
	for k := range attrs {
		attrs[k] = nil
	}
	return out
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
