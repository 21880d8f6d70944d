package web

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// FlashCookie carries notices across a redirect.
	FlashCookie = "roster_flash"
	// MaxNotices bounds the notices kept so the cookie stays small.
	MaxNotices = 20

	flashKey = "flash.pending"
)

type flashState struct {
	notices []string
}

// AddFlash queues notices for the next page render. Notices still unread from
// the request cookie are kept ahead of the new ones. The cookie is written
// just before the response header goes out.
func AddFlash(c echo.Context, msgs ...string) {
	state := pending(c)
	state.notices = append(state.notices, msgs...)
	if n := len(state.notices); n > MaxNotices {
		state.notices = state.notices[n-MaxNotices:]
	}
}

// TakeFlashes returns and clears every pending notice: those carried by the
// request cookie and those queued during this request.
func TakeFlashes(c echo.Context) []string {
	state := pending(c)
	notices := state.notices
	state.notices = nil

	if _, err := c.Cookie(FlashCookie); err == nil {
		c.SetCookie(&http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return notices
}

func pending(c echo.Context) *flashState {
	if state, ok := c.Get(flashKey).(*flashState); ok {
		return state
	}

	state := &flashState{notices: readFlashCookie(c)}
	c.Set(flashKey, state)
	c.Response().Before(func() {
		if len(state.notices) > 0 {
			http.SetCookie(c.Response(), flashCookie(state.notices))
		}
	})
	return state
}

func flashCookie(notices []string) *http.Cookie {
	data, err := msgpack.Marshal(notices)
	if err != nil {
		return &http.Cookie{Name: FlashCookie, Path: "/", MaxAge: -1}
	}
	return &http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func readFlashCookie(c echo.Context) []string {
	cookie, err := c.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var notices []string
	if err := msgpack.Unmarshal(data, &notices); err != nil {
		return nil
	}
	return notices
}
