package japi

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/artpar/japi/ports"
)

// HandlerFunc is a handler that returns a value for normalization instead
// of writing to the ResponseWriter itself.
type HandlerFunc func(r *http.Request) any

// Wrapper adapts HandlerFuncs to net/http by classifying and serializing
// their return values. The zero value is usable: default options, no log
// output, no observer.
type Wrapper struct {
	Options  Options
	Logger   zerolog.Logger
	Observer ports.Observer
}

// Wrap turns h into a standard http.HandlerFunc. A panic with an error
// value takes the identical classification path, so raised and returned
// errors produce byte-identical envelopes. Panics with non-error values
// degrade to the internal error envelope.
func (wr Wrapper) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					wr.Logger.Error().Interface("panic", rec).
						Str("path", r.URL.Path).Msg("handler panicked")
					wr.respond(w, r, Unknown, Fields{})
					return
				}
				out, fields := Classify(err)
				wr.respond(w, r, out, fields)
			}
		}()
		out, fields := Classify(h(r))
		wr.respond(w, r, out, fields)
	}
}

// RespondError routes an error through the same classification and
// serialization path as handler return values. Framework hooks (auth
// middleware, NotFound handlers) use it so errors raised outside a wrapped
// handler produce the same envelope shape as returned ones.
func (wr Wrapper) RespondError(w http.ResponseWriter, r *http.Request, err error) {
	out, fields := Classify(err)
	wr.respond(w, r, out, fields)
}

func (wr Wrapper) respond(w http.ResponseWriter, r *http.Request, out Outcome, fields Fields) {
	if out.Kind == KindUnknown {
		wr.Logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).
			Msg("unrecognized handler return, degrading to internal error")
	}
	resp := Serialize(out, fields, wr.Options)
	if wr.Observer != nil {
		wr.Observer.ObserveOutcome(out.Kind.String(), resp.Status)
	}
	wr.Logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).
		Int("status", resp.Status).Str("kind", out.Kind.String()).
		Msg("response normalized")
	resp.Write(w)
}
