package app

import (
	"net"
	"net/netip"
	"net/url"
)

// interfaceAddrs lists the addresses of every interface that is up and not
// a loopback
func interfaceAddrs() ([]net.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var addrs []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		a, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, a...)
	}
	return addrs, nil
}

// lanHost picks the host that phones on the same network use to open the
// bracket QR link: the first private IPv4 address, else the first other
// routable IPv4 address, else localhost.
func lanHost(list func() ([]net.Addr, error)) string {
	addrs, err := list()
	if err != nil {
		return "localhost"
	}

	var fallback netip.Addr
	for _, a := range addrs {
		ip := addrIP(a)
		if !ip.Is4() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		if ip.IsPrivate() {
			return ip.String()
		}
		if !fallback.IsValid() {
			fallback = ip
		}
	}
	if fallback.IsValid() {
		return fallback.String()
	}
	return "localhost"
}

func addrIP(a net.Addr) netip.Addr {
	var raw net.IP
	switch v := a.(type) {
	case *net.IPNet:
		raw = v.IP
	case *net.IPAddr:
		raw = v.IP
	}
	ip, ok := netip.AddrFromSlice(raw)
	if !ok {
		return netip.Addr{}
	}
	return ip.Unmap()
}

// unreachableURL reports whether a stored base URL is unset or points at
// the server's own loopback
func unreachableURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return true
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip, err := netip.ParseAddr(host)
	return err == nil && ip.IsLoopback()
}
