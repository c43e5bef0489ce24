package errbaghttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/errbag"
	"go.inout.gg/errbag/internal/errbagheader"
	"go.inout.gg/errbag/internal/errbagtest"
)

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("nil bag", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()

		err := Save(w, nil)
		assert.ErrorIs(t, err, errbag.ErrInvalidArgument)
	})

	t.Run("empty bag", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()

		err := Save(w, errbag.New())
		assert.ErrorIs(t, err, errbag.ErrEmptyBag)
	})

	t.Run("sets the flash cookie", func(t *testing.T) {
		t.Parallel()

		bag := errbag.Group([]errbag.Failure{{Field: "name", Message: "Required"}})

		w := httptest.NewRecorder()

		require.NoError(t, Save(w, bag))

		cookie := flashCookie(t, w)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly, "flash cookie should not be readable from scripts")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()

		r, w := errbagtest.NewRequest(http.MethodGet, "/signup", nil)

		bag, err := Load(w, r)
		require.NoError(t, err)
		assert.Nil(t, bag, "absent flash should yield no bag")
	})

	t.Run("corrupted cookie", func(t *testing.T) {
		t.Parallel()

		r, w := errbagtest.NewRequest(http.MethodGet, "/signup", nil)
		r.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "not-base64!!!"})

		bag, err := Load(w, r)
		require.Error(t, err)
		assert.Nil(t, bag)
	})
}

func TestFlash_Roundtrip(t *testing.T) {
	t.Parallel()

	bag := errbag.Group([]errbag.Failure{
		{Field: "name", Message: "Required"},
		{Field: "age", Message: "MustBePositive"},
		{Field: "name", Message: "TooLong"},
	})

	// First request: validation failed, flash the bag.
	w := httptest.NewRecorder()
	require.NoError(t, Save(w, bag))

	saved := flashCookie(t, w)

	// Next request: the client sends the cookie back.
	r, w2 := errbagtest.NewRequest(http.MethodGet, "/signup", nil)
	r.AddCookie(saved)

	loaded, err := Load(w2, r)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.True(t, bag.Equal(loaded), "flash should preserve order and content")
	assert.Equal(t, []string{"name", "age"}, loaded.Fields())
	assert.Equal(t, []string{"Required", "TooLong"}, loaded.Get("name"))

	assert.Contains(t, w2.Header().Get(errbagheader.HeaderSetCookie), FlashCookieName,
		"loading should clear the flash cookie")
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == FlashCookieName {
			return cookie
		}
	}

	t.Fatalf("flash cookie %q not set", FlashCookieName)

	return nil
}
