// Package errbaghttp connects errbag to net/http: it decodes entities from
// incoming requests and writes collected bags back to clients.
package errbaghttp

import (
	"cmp"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-playground/form/v4"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/errbag"
	"go.inout.gg/errbag/internal/errbagheader"
)

var d = debug.Debuglog("errbaghttp") //nolint:gochecknoglobals

var DefaultFormDecoder = form.NewDecoder() //nolint:gochecknoglobals

// DefaultMaxMultipartMemory bounds the in-memory part of a multipart form.
// The remainder spills to temporary files.
const DefaultMaxMultipartMemory int64 = 32 << 20

var ErrUnsupportedMediaType = errors.New("errbaghttp: unsupported media type")

// DecodeConfig is a configuration for Decode.
type DecodeConfig struct {
	// FormDecoder decodes form values into the destination entity.
	// Defaults to DefaultFormDecoder.
	FormDecoder *form.Decoder

	// JSONUnmarshalOptions are passed through to the JSON decoder.
	JSONUnmarshalOptions []json.Options

	// MaxMultipartMemory bounds the in-memory part of a multipart form.
	// Defaults to DefaultMaxMultipartMemory.
	MaxMultipartMemory int64
}

func (c *DecodeConfig) defaults() {
	c.FormDecoder = cmp.Or(c.FormDecoder, DefaultFormDecoder)
	c.MaxMultipartMemory = cmp.Or(c.MaxMultipartMemory, DefaultMaxMultipartMemory)
}

// Decode decodes the request payload into dst, which must be a non-nil
// pointer.
//
// GET requests are decoded from the URL query. Other methods are decoded
// from the body according to the Content-Type header: JSON, urlencoded
// form, or multipart form. Anything else returns an error wrapping
// ErrUnsupportedMediaType.
func Decode(r *http.Request, dst any, config *DecodeConfig) error {
	if r == nil {
		return fmt.Errorf("errbaghttp: request must not be nil: %w", errbag.ErrInvalidArgument)
	}

	if dst == nil {
		return fmt.Errorf("errbaghttp: destination must not be nil: %w", errbag.ErrInvalidArgument)
	}

	if config == nil {
		//nolint:exhaustruct
		config = &DecodeConfig{}
	}

	// Defaults are resolved on a copy; the caller's config is never written.
	cfg := *config
	cfg.defaults()

	debug.Assert(cfg.FormDecoder != nil, "FormDecoder must not be nil")

	if r.Method == http.MethodGet {
		d("decoding query parameters")

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("errbaghttp: failed to parse query parameters: %w", err)
		}

		if err := cfg.FormDecoder.Decode(dst, r.Form); err != nil {
			return fmt.Errorf("errbaghttp: failed to decode query parameters: %w", err)
		}

		return nil
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get(errbagheader.HeaderContentType))
	if err != nil {
		return fmt.Errorf("errbaghttp: failed to parse Content-Type header: %w", err)
	}

	switch mediaType {
	case errbagheader.ContentTypeJSON:
		d("decoding JSON request")

		if err := json.UnmarshalRead(r.Body, dst, cfg.JSONUnmarshalOptions...); err != nil {
			return fmt.Errorf("errbaghttp: failed to decode JSON request: %w", err)
		}
	case errbagheader.ContentTypeForm:
		d("decoding form request")

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("errbaghttp: failed to parse form data: %w", err)
		}

		if err := cfg.FormDecoder.Decode(dst, r.Form); err != nil {
			return fmt.Errorf("errbaghttp: failed to decode form data: %w", err)
		}
	case errbagheader.ContentTypeMultipart:
		d("decoding multipart request")

		if err := r.ParseMultipartForm(cfg.MaxMultipartMemory); err != nil {
			return fmt.Errorf("errbaghttp: failed to parse multipart form data: %w", err)
		}

		if err := cfg.FormDecoder.Decode(dst, r.Form); err != nil {
			return fmt.Errorf("errbaghttp: failed to decode multipart form data: %w", err)
		}
	default:
		return fmt.Errorf("errbaghttp: cannot decode media type %q: %w", mediaType, ErrUnsupportedMediaType)
	}

	return nil
}

type envelope struct {
	Errors *errbag.Bag `json:"errors"`
}

// WriteJSON writes the bag to the client as a 422 Unprocessable Entity
// response with an {"errors": ...} JSON body, preserving the bag's field
// order.
//
// WriteJSON returns an error wrapping ErrInvalidArgument if bag is nil.
// An empty bag is written as {"errors": {}}.
func WriteJSON(w http.ResponseWriter, bag *errbag.Bag, opts ...json.Options) error {
	if bag == nil {
		return fmt.Errorf("errbaghttp: bag must not be nil: %w", errbag.ErrInvalidArgument)
	}

	d("writing %d validation message(s)", bag.Count())

	w.Header().Set(errbagheader.HeaderContentType, errbagheader.ContentTypeJSON)
	w.WriteHeader(http.StatusUnprocessableEntity)

	if err := json.MarshalWrite(w, &envelope{Errors: bag}, opts...); err != nil {
		return fmt.Errorf("errbaghttp: failed to write response: %w", err)
	}

	return nil
}
