package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a local API address in format [host]:[port]
//	-server remote toggle API base address
//	-stream remote push stream address
//	-request-timeout request timeout (e.g., "10s")
//	-d storage DSN
//	-storage storage driver (sqlite, badger, memory)
//	-token actor bearer token
//	-device-id device id override
//	-c/-config json file path with configs
//	-log-level log level
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	var localAddress NetAddress

	fs := flag.NewFlagSet("toggle-sync", flag.ContinueOnError)
	fs.Var(&localAddress, "a", "Local API net address host:port")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server", "", "Remote toggle API base address")
	fs.StringVar(&cfg.Adapter.StreamAddress, "stream", "", "Remote push stream address")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&cfg.Storage.DSN, "d", "", "Storage DSN")
	fs.StringVar(&cfg.Storage.Driver, "storage", "", "Storage driver: sqlite, badger or memory")
	fs.StringVar(&cfg.App.ActorToken, "token", "", "Actor bearer token")
	fs.StringVar(&cfg.App.DeviceID, "device-id", "", "Device id override")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = localAddress.String()
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
