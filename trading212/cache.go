package trading212

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/t212/date"
	log "github.com/sirupsen/logrus"
)

// diskCache is an http.RoundTripper that keeps successful responses on disk
// until the end of the day. A "Cache-Control: no-cache" request skips the
// cached entry, and its response replaces it.
type diskCache struct {
	base http.RoundTripper
	dir  string
	salt string // keeps the responses of different accounts apart.
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := c.key(date.Today(nil), req)

	if !noCache(req) {
		if resp, err := c.get(key, req); err == nil {
			log.Debugf("%v %v%v from cache", req.Method, req.URL.Host, req.URL.Path)
			return resp, nil
		}
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warnf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func noCache(req *http.Request) bool {
	for _, v := range req.Header.Values("Cache-Control") {
		for _, d := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(d), "no-cache") {
				return true
			}
		}
	}
	return false
}

// key is unique per day, so entries expire every day.
func (c *diskCache) key(day date.Date, req *http.Request) string {
	key := fmt.Sprintf("%s %s %s %s", day, req.Method, req.URL.String(), c.salt)
	return fmt.Sprintf("t212-%x", sha1.Sum([]byte(key)))
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}
