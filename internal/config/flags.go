package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-env runtime environment (development|production)
//	-client-url base URL of the browser client
//	-access-secret access token signing secret
//	-verify-secret email verification token signing secret
//	-reset-secret password reset token signing secret
//	-token-issuer token issuer name
//	-access-ttl access token lifetime (e.g., "15m")
//	-refresh-days refresh secret lifetime in days
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var environment string
	var clientURL string
	var accessSecret string
	var verifySecret string
	var resetSecret string
	var tokenIssuer string
	var accessTTL time.Duration
	var refreshDays int
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&environment, "env", "", "Runtime environment (development|production)")
	flag.StringVar(&clientURL, "client-url", "", "Base URL of the browser client")
	flag.StringVar(&accessSecret, "access-secret", "", "Access token signing secret")
	flag.StringVar(&verifySecret, "verify-secret", "", "Email verification token signing secret")
	flag.StringVar(&resetSecret, "reset-secret", "", "Password reset token signing secret")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTTL, "access-ttl", 0, "Access token lifetime (e.g., 15m)")
	flag.IntVar(&refreshDays, "refresh-days", 0, "Refresh secret lifetime in days")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Env:       environment,
			ClientURL: clientURL,
		},
		Auth: Auth{
			AccessSecret:        accessSecret,
			VerifyEmailSecret:   verifySecret,
			ResetPasswordSecret: resetSecret,
			Issuer:              tokenIssuer,
			AccessTTL:           accessTTL,
			RefreshDays:         refreshDays,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the merge
// layer below can supply the default.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("invalid host")
		}
	}

	a.Host = host
	a.Port = port

	return nil
}
