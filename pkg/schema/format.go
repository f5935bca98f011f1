// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// DefaultSchemes are accepted by URL fields that declare no schemes of their own.
var DefaultSchemes = []string{"http", "https", "ftp", "ftps"}

const maxEmailLen = 254

var (
	localPartRE   = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*$")
	domainLabelRE = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
)

// isEmail requires exactly one '@', a dot-atom local part and a domain of at
// least two non-empty labels.
func isEmail(s string) bool {
	if len(s) > maxEmailLen || strings.Count(s, "@") != 1 {
		return false
	}

	local, domain, _ := strings.Cut(s, "@")
	if !localPartRE.MatchString(local) {
		return false
	}

	return isDomain(domain)
}

func isDomain(d string) bool {
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return false
	}

	for _, l := range labels {
		if !domainLabelRE.MatchString(l) {
			return false
		}
	}

	return true
}

// isURL requires "<scheme>://<host>" with scheme taken from schemes.
func isURL(s string, schemes []string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	scheme, _, ok := strings.Cut(s, "://")
	if !ok || !hasScheme(schemes, scheme) {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	host := u.Hostname()
	switch {
	case host == "":
		return false
	case strings.EqualFold(host, "localhost"), net.ParseIP(host) != nil:
		return true
	default:
		return isDomain(host)
	}
}

func hasScheme(schemes []string, scheme string) bool {
	if scheme == "" {
		return false
	}

	for _, s := range schemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}

	return false
}
