package errbaghttp

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"net/http"

	"go.inout.gg/foundations/http/httpcookie"

	"go.inout.gg/errbag"
)

const (
	FlashCookieName = "_errbag"

	flashCookiePath = "/"
)

// Save stores the bag in a flash cookie so it survives a redirect, the
// classic POST, redirect back, re-render flow for HTML form submissions.
// Load on the next request restores the bag and clears the cookie.
//
// Save returns an error wrapping errbag.ErrInvalidArgument if bag is nil,
// and an error wrapping errbag.ErrEmptyBag if there is nothing to flash.
func Save(w http.ResponseWriter, bag *errbag.Bag) error {
	if bag == nil {
		return fmt.Errorf("errbaghttp: bag must not be nil: %w", errbag.ErrInvalidArgument)
	}

	if bag.Count() == 0 {
		return fmt.Errorf("errbaghttp: nothing to flash: %w", errbag.ErrEmptyBag)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bag.Failures()); err != nil {
		return fmt.Errorf("errbaghttp: failed to encode flash data: %w", err)
	}

	d("flashing %d validation message(s)", bag.Count())

	//nolint:exhaustruct
	cookie := &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(buf.Bytes()),
		Path:     flashCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)

	return nil
}

// Load restores a bag flashed by Save on a previous request and deletes the
// cookie, so each flash is observed at most once. The cookie is deleted
// even if its payload fails to decode.
//
// Load returns (nil, nil) when no flash cookie is present.
func Load(w http.ResponseWriter, r *http.Request) (*errbag.Bag, error) {
	val := httpcookie.Get(r, FlashCookieName)
	if val == "" {
		return nil, nil
	}

	httpcookie.Delete(w, r, FlashCookieName)

	b, err := base64.RawURLEncoding.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("errbaghttp: failed to decode flash cookie: %w", err)
	}

	var failures []errbag.Failure
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&failures); err != nil {
		return nil, fmt.Errorf("errbaghttp: failed to decode flash data: %w", err)
	}

	d("restored %d flashed failure(s)", len(failures))

	return errbag.Group(failures), nil
}
