package services

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

// ErrNoLANAddress is returned when no usable IPv4 interface exists and no override is configured
var ErrNoLANAddress = errors.New("no LAN IPv4 address found")

const qrCodeSize = 256

// InterfacePairingService defines pairing descriptor generation
type InterfacePairingService interface {
	Descriptor() (models.PairingDescriptor, error)
	QRCode() ([]byte, error)
}

// PairingService advertises the gateway address to the mobile app
type PairingService struct {
	Override string
	Port     int
	Log      *zap.Logger

	// replaced in tests
	interfaceAddrs func() ([]net.Addr, error)
}

// NewPairingService creates a pairing service for the gateway listening on port.
// A non-empty override replaces interface detection.
func NewPairingService(override, port string, log *zap.Logger) (*PairingService, error) {
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway port %q: %w", port, err)
	}
	return &PairingService{
		Override:       override,
		Port:           p,
		Log:            log,
		interfaceAddrs: lanAddrs,
	}, nil
}

// Descriptor returns the address and port the mobile app should connect to
func (s *PairingService) Descriptor() (models.PairingDescriptor, error) {
	address := s.Override
	if address == "" {
		ip, err := s.detectAddress()
		if err != nil {
			return models.PairingDescriptor{}, err
		}
		address = ip
	}

	d := models.PairingDescriptor{Address: address, Port: s.Port}
	if err := d.Validate(); err != nil {
		return models.PairingDescriptor{}, err
	}
	return d, nil
}

// QRCode encodes the "ip:port" descriptor as a PNG
func (s *PairingService) QRCode() ([]byte, error) {
	d, err := s.Descriptor()
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(d.String(), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode pairing qr code: %w", err)
	}
	return png, nil
}

func (s *PairingService) detectAddress() (string, error) {
	addrs, err := s.interfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.IsLinkLocalUnicast() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", ErrNoLANAddress
}

// lanAddrs returns the addresses of interfaces that are up and not loopback
func lanAddrs() ([]net.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, addrs...)
	}
	return out, nil
}
