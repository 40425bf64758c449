package e2etest

import (
	"github.com/myrjola/dailytake/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// unsafeCookieJar keeps the session and CSRF cookies over plain HTTP. Both are issued with the Secure flag, which a
// standard jar would refuse to send to a local test server.
type unsafeCookieJar struct {
	*cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &unsafeCookieJar{Jar: jar}, nil
}

func (u *unsafeCookieJar) SetCookies(target *url.URL, cookies []*http.Cookie) {
	insecure := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		c := *cookie
		c.Secure = false
		insecure = append(insecure, &c)
	}
	u.Jar.SetCookies(target, insecure)
}
