package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address' domain resolves, catching
// typo'd domains at registration before an account is created. DNS
// failures on a real domain read as invalid; registration is the only
// caller and may simply be retried.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	// Mail domains normally carry MX records; an A/AAAA record is
	// accepted as the fallback the RFC allows.
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
