package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrInvalidDescriptor is returned for pairing payloads that are neither "ip:port" nor {"ip","porta"}
var ErrInvalidDescriptor = errors.New("invalid pairing descriptor")

// PairingDescriptor is the LAN address of the gateway shown to the mobile app as a QR code
type PairingDescriptor struct {
	Address string `json:"ip"`
	Port    int    `json:"porta"`
}

// String returns the "ip:port" form encoded in the QR code
func (d PairingDescriptor) String() string {
	return net.JoinHostPort(d.Address, strconv.Itoa(d.Port))
}

// BaseURL returns the gateway root URL
func (d PairingDescriptor) BaseURL() string {
	return "http://" + d.String()
}

// Validate checks the address is an IPv4 literal and the port is in range
func (d PairingDescriptor) Validate() error {
	ip := net.ParseIP(d.Address)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidDescriptor, d.Address)
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidDescriptor, d.Port)
	}
	return nil
}

// ParsePairingDescriptor reads a scanned payload in either "ip:port" or JSON form
func ParsePairingDescriptor(payload string) (PairingDescriptor, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return PairingDescriptor{}, fmt.Errorf("%w: empty payload", ErrInvalidDescriptor)
	}

	var d PairingDescriptor
	if strings.HasPrefix(payload, "{") {
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return PairingDescriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
	} else {
		host, port, err := net.SplitHostPort(strings.TrimPrefix(payload, "http://"))
		if err != nil {
			return PairingDescriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		d.Address = host
		if d.Port, err = strconv.Atoi(port); err != nil {
			return PairingDescriptor{}, fmt.Errorf("%w: port %q", ErrInvalidDescriptor, port)
		}
	}

	if err := d.Validate(); err != nil {
		return PairingDescriptor{}, err
	}
	return d, nil
}
