package errbaghttp

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/errbag"
	"go.inout.gg/errbag/internal/errbagtest"
)

type signupForm struct {
	Name  string `form:"name"  json:"name"`
	Email string `form:"email" json:"email"`
	Age   int    `form:"age"   json:"age"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		var dst signupForm

		err := Decode(nil, &dst, nil)
		assert.ErrorIs(t, err, errbag.ErrInvalidArgument)
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewRequest(http.MethodPost, "/signup", nil)

		err := Decode(r, nil, nil)
		assert.ErrorIs(t, err, errbag.ErrInvalidArgument)
	})

	t.Run("query parameters", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewRequest(http.MethodGet, "/signup?name=Prudence&age=42", nil)

		var dst signupForm

		require.NoError(t, Decode(r, &dst, nil))
		assert.Equal(t, "Prudence", dst.Name)
		assert.Equal(t, 42, dst.Age)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewJSONRequest(http.MethodPost, "/signup", map[string]any{
			"name":  "Prudence",
			"email": "prudence@example.com",
			"age":   42,
		})

		var dst signupForm

		require.NoError(t, Decode(r, &dst, nil))
		assert.Equal(t, "Prudence", dst.Name)
		assert.Equal(t, "prudence@example.com", dst.Email)
		assert.Equal(t, 42, dst.Age)
	})

	t.Run("form body", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewFormRequest(http.MethodPost, "/signup", url.Values{
			"name": {"Prudence"},
			"age":  {"42"},
		})

		var dst signupForm

		require.NoError(t, Decode(r, &dst, nil))
		assert.Equal(t, "Prudence", dst.Name)
		assert.Equal(t, 42, dst.Age)
	})

	t.Run("multipart body", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewMultipartRequest(http.MethodPost, "/signup", url.Values{
			"name": {"Prudence"},
			"age":  {"42"},
		})

		var dst signupForm

		require.NoError(t, Decode(r, &dst, nil))
		assert.Equal(t, "Prudence", dst.Name)
		assert.Equal(t, 42, dst.Age)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewRequest(http.MethodPost, "/signup", &errbagtest.RequestConfig{
			Body:        strings.NewReader("name=Prudence"),
			ContentType: "text/plain",
		})

		var dst signupForm

		err := Decode(r, &dst, nil)
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewRequest(http.MethodPost, "/signup", &errbagtest.RequestConfig{
			Body: strings.NewReader("name=Prudence"),
		})

		var dst signupForm

		assert.Error(t, Decode(r, &dst, nil))
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		r, _ := errbagtest.NewRequest(http.MethodPost, "/signup", &errbagtest.RequestConfig{
			Body:        strings.NewReader(`{"name":`),
			ContentType: "application/json",
		})

		var dst signupForm

		assert.Error(t, Decode(r, &dst, nil))
	})

	t.Run("caller's config stays untouched", func(t *testing.T) {
		t.Parallel()

		//nolint:exhaustruct
		config := &DecodeConfig{}

		r, _ := errbagtest.NewFormRequest(http.MethodPost, "/signup", url.Values{
			"name": {"Prudence"},
		})

		var dst signupForm

		require.NoError(t, Decode(r, &dst, config))

		assert.Nil(t, config.FormDecoder, "defaults should resolve on a copy")
		assert.Zero(t, config.MaxMultipartMemory)
	})
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("nil bag", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()

		err := WriteJSON(w, nil)
		assert.ErrorIs(t, err, errbag.ErrInvalidArgument)
	})

	t.Run("writes ordered errors", func(t *testing.T) {
		t.Parallel()

		bag := errbag.Group([]errbag.Failure{
			{Field: "name", Message: "Required"},
			{Field: "age", Message: "MustBePositive"},
			{Field: "name", Message: "TooLong"},
		})

		w := httptest.NewRecorder()

		require.NoError(t, WriteJSON(w, bag))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t,
			`{"errors":{"name":["Required","TooLong"],"age":["MustBePositive"]}}`,
			strings.TrimSpace(w.Body.String()),
			"response should preserve the bag's field order")
	})

	t.Run("empty bag", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()

		require.NoError(t, WriteJSON(w, errbag.New()))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, `{"errors":{}}`, strings.TrimSpace(w.Body.String()))
	})
}
