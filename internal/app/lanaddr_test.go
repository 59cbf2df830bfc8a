package app

import (
	"context"
	"errors"
	"net"
	"testing"
)

func ipNet(s string) net.Addr {
	return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
}

func ipAddr(s string) net.Addr {
	return &net.IPAddr{IP: net.ParseIP(s)}
}

func TestLanHost(t *testing.T) {
	tests := []struct {
		name  string
		addrs []net.Addr
		err   error
		want  string
	}{
		{"listing fails", nil, errors.New("no interfaces"), "localhost"},
		{"no addresses", nil, nil, "localhost"},
		{"home network", []net.Addr{ipNet("192.168.1.20")}, nil, "192.168.1.20"},
		{"10 network", []net.Addr{ipNet("10.0.0.7")}, nil, "10.0.0.7"},
		{"172.16/12", []net.Addr{ipNet("172.20.1.1")}, nil, "172.20.1.1"},
		{"172 outside /12", []net.Addr{ipNet("172.32.1.1")}, nil, "172.32.1.1"},
		{"private preferred over public", []net.Addr{ipNet("203.0.113.5"), ipNet("192.168.0.9")}, nil, "192.168.0.9"},
		{"first public as fallback", []net.Addr{ipNet("203.0.113.5"), ipNet("198.51.100.1")}, nil, "203.0.113.5"},
		{"ip addr form", []net.Addr{ipAddr("10.1.2.3")}, nil, "10.1.2.3"},
		{"skips ipv6", []net.Addr{ipNet("fe80::1"), ipNet("fd00::1")}, nil, "localhost"},
		{"skips loopback", []net.Addr{ipNet("127.0.0.1")}, nil, "localhost"},
		{"skips link local", []net.Addr{ipNet("169.254.3.4"), ipNet("10.9.9.9")}, nil, "10.9.9.9"},
		{"ipv4 mapped", []net.Addr{ipAddr("::ffff:192.168.5.5")}, nil, "192.168.5.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lanHost(func() ([]net.Addr, error) { return tt.addrs, tt.err })
			if got != tt.want {
				t.Errorf("lanHost() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLanHost_RealInterfaces(t *testing.T) {
	host := lanHost(interfaceAddrs)

	if host != "localhost" && net.ParseIP(host) == nil {
		t.Errorf("expected localhost or an IP, got %s", host)
	}
}

func TestUnreachableURL(t *testing.T) {
	tests := map[string]bool{
		"":                           true,
		"http://localhost:8081":      true,
		"http://127.0.0.1:8081":      true,
		"http://[::1]:8081":          true,
		"not a url":                  true,
		"http://192.168.1.50:8081":   false,
		"https://derby.example.org":  false,
		"http://10.0.0.2:8081/admin": false,
	}
	for raw, want := range tests {
		if got := unreachableURL(raw); got != want {
			t.Errorf("unreachableURL(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestSetDefaultBaseURL(t *testing.T) {
	const detected = "http://192.168.1.100:8081"

	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{"unset", "", detected},
		{"localhost replaced", "http://localhost:8081", detected},
		{"loopback ip replaced", "http://127.0.0.1:8081", detected},
		{"admin choice kept", "http://192.168.1.50:8081", "http://192.168.1.50:8081"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := createTestApp(t)
			defer app.Close()

			ctx := context.Background()
			if tt.existing != "" {
				if err := app.repo.SetSetting(ctx, "base_url", tt.existing); err != nil {
					t.Fatalf("SetSetting failed: %v", err)
				}
			}

			app.setDefaultBaseURL(detected)

			got, err := app.repo.GetSetting(ctx, "base_url")
			if err != nil {
				t.Fatalf("GetSetting failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("base_url = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetDefaultBaseURL_ClosedRepository(t *testing.T) {
	app := createTestApp(t)
	app.Close()

	// Logs a warning instead of failing
	app.setDefaultBaseURL("http://192.168.1.100:8081")
}
