package services

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"

	"github.com/apimgr/ipweather/src/models"
)

// OpenDNS answers this name with the address the query came from
const (
	DefaultDNSServer = "resolver1.opendns.com:53"
	DefaultDNSName   = "myip.opendns.com"
)

// DNSIPResolver learns the public address from a resolver that echoes it
type DNSIPResolver struct {
	client *dns.Client
	server string
	name   string
	qtype  uint16
}

// Ensure DNSIPResolver implements PublicIPResolver.
var _ PublicIPResolver = (*DNSIPResolver)(nil)

// NewDNSIPResolver creates a DNS-backed resolver. Empty server or name use the
// OpenDNS defaults; ipv6 asks for AAAA instead of A.
func NewDNSIPResolver(server, name string, ipv6 bool, timeout time.Duration) *DNSIPResolver {
	if server == "" {
		server = DefaultDNSServer
	}
	if name == "" {
		name = DefaultDNSName
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	qtype := dns.TypeA
	if ipv6 {
		qtype = dns.TypeAAAA
	}
	return &DNSIPResolver{
		client: &dns.Client{Net: "udp", Timeout: timeout},
		server: server,
		name:   dns.Fqdn(name),
		qtype:  qtype,
	}
}

// ResolvePublicIP sends a single query and returns the first address record
func (r *DNSIPResolver) ResolvePublicIP(ctx context.Context) (models.PublicAddress, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(r.name, r.qtype)

	in, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return models.PublicAddress{}, &NetworkError{Stage: StageIP, Err: err}
	}

	if in.Rcode != dns.RcodeSuccess {
		return models.PublicAddress{}, &ParseError{
			Stage: StageIP,
			Field: "answer",
			Err:   fmt.Errorf("resolver returned %s", dns.RcodeToString[in.Rcode]),
		}
	}

	for _, rr := range in.Answer {
		switch rec := rr.(type) {
		case *dns.A:
			return models.PublicAddress{IP: rec.A.String()}, nil
		case *dns.AAAA:
			return models.PublicAddress{IP: rec.AAAA.String()}, nil
		}
	}

	return models.PublicAddress{}, &ParseError{Stage: StageIP, Field: "answer", Err: ErrMissingField}
}
