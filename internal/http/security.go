// ABOUTME: Hardened HTTP client construction: dial, TLS and header timeouts
// ABOUTME: Proxy support comes from HTTP_PROXY/HTTPS_PROXY via the environment

package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// SecureHTTPClient creates an HTTP client with bounded dial, TLS and
// response-header timeouts. A zero timeout leaves the overall request
// unbounded, which long-lived streaming responses need.
func SecureHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   15 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 20 * time.Second,
			IdleConnTimeout:       60 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
		},
	}
}
