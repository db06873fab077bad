package proxy

import "fmt"

// Settings carries the outbound proxy used for browser-driven page fetches.
// Residential proxies help when retail sites block datacenter addresses.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// HostPort returns the proxy host:port string (e.g., "http://geo.iproyal.com:12321").
func (p Settings) HostPort() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.Hostname, p.Port)
}

// FullURL returns the full proxy URL with credentials.
func (p Settings) FullURL() string {
	if !p.HasProxy() {
		return ""
	}
	if p.Username != "" && p.Password != "" {
		return fmt.Sprintf("http://%s:%s@%s:%d", p.Username, p.Password, p.Hostname, p.Port)
	}
	return p.HostPort()
}

// Redacted returns the proxy URL with the password masked, safe for logs.
func (p Settings) Redacted() string {
	if !p.HasProxy() {
		return ""
	}
	if p.Username != "" {
		return fmt.Sprintf("http://%s:***@%s:%d", p.Username, p.Hostname, p.Port)
	}
	return p.HostPort()
}
