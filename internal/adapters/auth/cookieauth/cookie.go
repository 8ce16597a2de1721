package cookieauth

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const tokenKey = "token"

// Cookies guarda el token de sesión en una cookie firmada (gorilla/sessions).
// El estado real vive en el session.Store; la cookie solo transporta el token.
type Cookies struct {
	name  string
	store *sessions.CookieStore
}

type CookieOptions struct {
	Name    string
	HashKey []byte // vacío => clave aleatoria (las sesiones no sobreviven reinicios)
	MaxAge  time.Duration
	Secure  bool
}

func NewCookies(opts CookieOptions) *Cookies {
	key := opts.HashKey
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Cookies{name: opts.Name, store: store}
}

func (c *Cookies) Name() string {
	return c.name
}

// Token lee el token de la cookie. "" si no hay cookie o la firma no valida.
func (c *Cookies) Token(r *http.Request) string {
	s, err := c.store.Get(r, c.name)
	if err != nil || s.IsNew {
		return ""
	}
	tok, _ := s.Values[tokenKey].(string)
	return tok
}

func (c *Cookies) Issue(w http.ResponseWriter, r *http.Request, token string) error {
	// Get devuelve una sesión nueva (y error) si la cookie vieja no decodifica; la pisamos.
	s, _ := c.store.Get(r, c.name)
	s.Values[tokenKey] = token
	return s.Save(r, w)
}

func (c *Cookies) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := c.store.Get(r, c.name)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
