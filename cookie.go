package sfexplorer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const StateCookie = "nonce"

func (a *App) setStateCookie(c *gin.Context, nonce string) error {
	now := time.Now()
	token, err := a.signState(nonce, now)
	if err != nil {
		return fmt.Errorf("failed to sign state: %w", err)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     StateCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(a.stateTTL),
		Secure:   strings.HasPrefix(a.config.AppURL, "https://"),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// compareStateCookie checks the signed cookie against the state Shopify echoed
// back.
func (a *App) compareStateCookie(c *gin.Context, state string) error {
	cookie, err := c.Cookie(StateCookie)
	if err != nil {
		return fmt.Errorf("%w: could not read state cookie", ErrInvalidState)
	}
	nonce, err := a.parseState(cookie)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if nonce != state {
		return fmt.Errorf("%w: expected=[%s] got=[%s]", ErrInvalidState, nonce, state)
	}
	return nil
}

func deleteCookies(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", Expires: time.Unix(0, 0)})
	}
}
