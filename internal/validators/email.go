package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

// IsEmailSyntaxValid only checks the address shape.
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// IsEmailDomainValid also requires the domain to resolve (MX or A).
func IsEmailDomainValid(ctx context.Context, email string) bool {
	if !IsEmailSyntaxValid(email) {
		return false
	}
	domain := email[strings.LastIndex(email, "@")+1:]

	r := net.DefaultResolver
	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
