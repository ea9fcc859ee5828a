package discord

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// rebaseTransport sends requests addressed to discordgo's built-in API root
// to a configured base URL instead, e.g. a newer API version or a test server.
type rebaseTransport struct {
	from string
	to   *url.URL
	next http.RoundTripper
}

func newRebaseTransport(baseURL string, next http.RoundTripper) (http.RoundTripper, error) {
	if next == nil {
		next = http.DefaultTransport
	}
	to, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	return &rebaseTransport{from: discordgo.EndpointAPI, to: to, next: next}, nil
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	orig := req.URL.String()
	if !strings.HasPrefix(orig, t.from) {
		return t.next.RoundTrip(req)
	}

	rel, err := url.Parse(strings.TrimPrefix(orig, t.from))
	if err != nil {
		return nil, err
	}

	out := req.Clone(req.Context())
	out.URL = t.to.ResolveReference(rel)
	out.Host = out.URL.Host
	return t.next.RoundTrip(out)
}
