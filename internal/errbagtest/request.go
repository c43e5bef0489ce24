package errbagtest

import (
	"bytes"
	"cmp"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"go.inout.gg/errbag/internal/errbagheader"
)

type RequestConfig struct {
	Body        io.Reader
	ContentType string
}

// NewRequest creates a new request and a recorder for capturing the response.
func NewRequest(
	method string,
	target string,
	config *RequestConfig,
) (*http.Request, *httptest.ResponseRecorder) {
	//nolint:exhaustruct
	config = cmp.Or(config, &RequestConfig{})

	r := httptest.NewRequest(method, target, config.Body)

	if config.ContentType != "" {
		r.Header.Set(errbagheader.HeaderContentType, config.ContentType)
	}

	return r, httptest.NewRecorder()
}

// NewFormRequest creates a new request carrying values as a urlencoded form
// body.
func NewFormRequest(
	method string,
	target string,
	values url.Values,
) (*http.Request, *httptest.ResponseRecorder) {
	return NewRequest(method, target, &RequestConfig{
		Body:        strings.NewReader(values.Encode()),
		ContentType: errbagheader.ContentTypeForm,
	})
}

// NewJSONRequest creates a new request carrying body encoded as JSON.
func NewJSONRequest(
	method string,
	target string,
	body any,
) (*http.Request, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		panic(err)
	}

	return NewRequest(method, target, &RequestConfig{
		Body:        &buf,
		ContentType: errbagheader.ContentTypeJSON,
	})
}

// NewMultipartRequest creates a new request carrying values as a multipart
// form body.
func NewMultipartRequest(
	method string,
	target string,
	values url.Values,
) (*http.Request, *httptest.ResponseRecorder) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	for field, vals := range values {
		for _, val := range vals {
			if err := mw.WriteField(field, val); err != nil {
				panic(err)
			}
		}
	}

	if err := mw.Close(); err != nil {
		panic(err)
	}

	return NewRequest(method, target, &RequestConfig{
		Body:        &buf,
		ContentType: mw.FormDataContentType(),
	})
}
