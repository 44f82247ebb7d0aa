package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frantjc/genplist/ios"
	xslice "github.com/frantjc/x/slice"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/timewasted/go-accept-headers"
)

const (
	contentTypeJSON = "application/json"
)

type Opts struct {
	Logger     logr.Logger
	Registerer prometheus.Registerer
}

type Opt interface {
	Apply(*Opts)
}

func (o *Opts) Apply(opts *Opts) {
	if o != nil {
		if opts != nil {
			if o.Logger.GetSink() != nil {
				opts.Logger = o.Logger
			}
			if o.Registerer != nil {
				opts.Registerer = o.Registerer
			}
		}
	}
}

func newOpts(opts ...Opt) *Opts {
	o := &Opts{
		Logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt.Apply(o)
	}

	if o.Registerer == nil {
		o.Registerer = prometheus.NewRegistry()
	}

	return o
}

type handler struct {
	log             logr.Logger
	metrics         *metrics
	marshalManifest func(*ios.Manifest, string) ([]byte, error)
}

// NewHandler returns the HTTP handler serving
// the status document at / and manifests at /genPlist.
func NewHandler(opts ...Opt) (http.Handler, error) {
	o := newOpts(opts...)

	m, err := newMetrics(o.Registerer)
	if err != nil {
		return nil, err
	}

	var (
		h = &handler{
			log:             o.Logger,
			metrics:         m,
			marshalManifest: ios.MarshalManifest,
		}
		r = chi.NewRouter()
	)

	r.Use(
		middleware.RealIP,
		h.requestID,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  &logPrinter{log: h.log},
			NoColor: true,
		}),
		middleware.Recoverer,
	)

	r.Get("/", h.metrics.instrument("status", handleErr(h.handleStatus)))

	r.Get("/genPlist", h.metrics.instrument("genPlist", handleErr(h.handleGenPlist)))

	r.NotFound(http.NotFound)

	return r, nil
}

func handleErr(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			var (
				log  = logr.FromContextOrDiscard(r.Context())
				code = statusCode(err)
			)

			if code >= http.StatusInternalServerError {
				log.Error(err, "handling request")
			} else {
				log.V(1).Info("rejecting request", "reason", err.Error(), "code", code)
			}

			if nErr := negotiate(w, r, contentTypeJSON); nErr != nil {
				http.Error(w, err.Error(), code)
				return
			}

			w.WriteHeader(code)
			_ = respondJSON(w, newErrorResponse(err), wantsPretty(r))
		}
	}
}

// negotiate checks that the client accepts contentType and,
// if so, sets it as the response's Content-Type. A request
// without an Accept header accepts anything. Media ranges
// with q=0 exclude the types they match.
func negotiate(w http.ResponseWriter, r *http.Request, contentType string) error {
	w.Header().Set("Vary", "Accept")

	if header := r.Header.Get("Accept"); header != "" && !accepts(header, contentType) {
		return newRequestError(
			fmt.Errorf("%s is not acceptable: %s", contentType, header),
			http.StatusNotAcceptable,
		)
	}

	w.Header().Set("Content-Type", contentType)

	return nil
}

func accepts(header, contentType string) bool {
	var (
		parsed   = accept.Parse(header)
		excluded = xslice.Some(parsed, func(a accept.Accept, _ int) bool {
			return a.Q == 0 && a.Type+"/"+a.Subtype == contentType
		})
	)
	if excluded {
		return false
	}

	return accept.AcceptSlice(xslice.Filter(parsed, func(a accept.Accept, _ int) bool {
		return a.Q > 0
	})).Accepts(contentType)
}

func respondJSON(w http.ResponseWriter, a any, pretty bool) error {
	w.Header().Set("Content-Type", contentTypeJSON)

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(a)
}

func wantsPretty(r *http.Request) bool {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	return pretty
}
