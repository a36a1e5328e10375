package mod

import (
	"fmt"
	"strings"
)

// Side declares which host roles a mod is eligible for.
type Side int

const (
	SideBoth Side = iota
	SideClient
	SideServer
)

// ParseSide maps a manifest side string to a Side. An absent or empty
// value defaults to SideBoth.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "both", "universal":
		return SideBoth, nil
	case "client":
		return SideClient, nil
	case "server":
		return SideServer, nil
	default:
		return SideBoth, fmt.Errorf("%w: %q", ErrInvalidSide, raw)
	}
}

func (s Side) HasClient() bool {
	return s != SideServer
}

func (s Side) HasServer() bool {
	return s != SideClient
}

func (s Side) String() string {
	switch s {
	case SideClient:
		return "client"
	case SideServer:
		return "server"
	default:
		return "both"
	}
}
