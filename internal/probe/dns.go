package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSClass is a coarse diagnosis of why a host does or does not resolve.
type DNSClass string

const (
	DNSResolves DNSClass = "resolves"
	DNSNXDomain DNSClass = "nxdomain"
	DNSNoAddr   DNSClass = "no_addr"  // zone exists but no A/AAAA records
	DNSServfail DNSClass = "servfail_or_timeout"
	DNSInvalid  DNSClass = "invalid_name"
)

type DNSStatus struct {
	Host          string
	IPs           []net.IP
	CNAME         string
	Nameservers   []string
	Class         DNSClass
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// LookupDNS resolves host with the OS resolver and classifies the outcome.
// Fronts use it to refine a connection_error: "nxdomain" tells the operator
// something very different from "servfail_or_timeout".
func LookupDNS(host string) DNSStatus {
	s := DNSStatus{Host: strings.TrimSpace(host)}
	if s.Host == "" || strings.Contains(s.Host, "://") {
		s.Class = DNSInvalid
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", s.Host)
	if err == nil && len(ips) > 0 {
		s.IPs = ips
		s.Class = DNSResolves
	} else if err != nil {
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				s.Class = DNSServfail
			}
		}
	}

	if cname, err := r.LookupCNAME(ctx, s.Host); err == nil && !strings.EqualFold(cname, s.Host+".") {
		s.CNAME = strings.TrimSuffix(cname, ".")
	}

	if ns, err := r.LookupNS(ctx, s.Host); err == nil && len(ns) > 0 {
		for _, n := range ns {
			s.Nameservers = append(s.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		// the zone is delegated, so an NXDOMAIN on the name itself
		// means "no address records", not "no such zone"
		if s.Class == DNSNXDomain {
			s.Class = DNSNoAddr
		}
	}

	if s.Class == "" {
		switch {
		case len(s.IPs) > 0:
			s.Class = DNSResolves
		case len(s.Nameservers) > 0:
			s.Class = DNSNoAddr
		case s.ResolverError != "":
			s.Class = DNSServfail
		default:
			s.Class = DNSNXDomain
		}
	}
	return s
}

// HostOf extracts the hostname from a URL, falling back to the raw string
// when it does not parse.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
