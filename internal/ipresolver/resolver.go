// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ipresolver detects the addresses a node binds to and is reachable
// at when they are not configured. Both lookups block on network I/O and
// rely on the transport's default timeouts.
package ipresolver

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/MKhiriev/go-node-config/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Default lookup endpoints.
const (
	DefaultCheckIPURL  = "http://checkip.amazonaws.com"
	DefaultDialAddress = "www.google.com:80"
)

//go:generate mockgen -source=resolver.go -destination=../mock/ipresolver_mock.go -package=mock

// Resolver detects one IP address. Lookups log through the logger carried by
// ctx, if any.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// HTTPResolver asks an echo service for the caller's public address. The
// first line of the response body must be an IP address.
type HTTPResolver struct {
	client *resty.Client
	url    string
}

// NewHTTPResolver returns a resolver querying url, or DefaultCheckIPURL
// when url is empty.
func NewHTTPResolver(url string) *HTTPResolver {
	if url == "" {
		url = DefaultCheckIPURL
	}

	return &HTTPResolver{client: resty.New(), url: url}
}

// Resolve implements [Resolver].
func (r *HTTPResolver) Resolve(ctx context.Context) (string, error) {
	logger.FromContext(ctx).Debug().Str("url", r.url).Msg("querying ip echo service")

	resp, err := r.client.R().
		SetContext(ctx).
		Get(r.url)
	if err != nil {
		return "", fmt.Errorf("external ip request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s answered %s", ErrLookupFailed, r.url, resp.Status())
	}

	line, _, _ := strings.Cut(resp.String(), "\n")
	return parseIP(line)
}

// DialResolver opens a TCP connection to a well-known host and reports the
// local address the operating system picked for it.
type DialResolver struct {
	address string
	dialer  net.Dialer
}

// NewDialResolver returns a resolver dialing address, or
// DefaultDialAddress when address is empty.
func NewDialResolver(address string) *DialResolver {
	if address == "" {
		address = DefaultDialAddress
	}

	return &DialResolver{address: address}
}

// Resolve implements [Resolver].
func (r *DialResolver) Resolve(ctx context.Context) (string, error) {
	logger.FromContext(ctx).Debug().Str("address", r.address).Msg("dialing to detect local address")

	conn, err := r.dialer.DialContext(ctx, "tcp", r.address)
	if err != nil {
		return "", fmt.Errorf("error dialing %s: %w", r.address, err)
	}
	defer conn.Close()

	host, _, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		return "", fmt.Errorf("error reading local address: %w", err)
	}
	return parseIP(host)
}

// Static always answers with a fixed address. It stands in for a lookup in
// offline environments.
type Static string

// Resolve implements [Resolver].
func (s Static) Resolve(context.Context) (string, error) {
	return parseIP(string(s))
}

func parseIP(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" || net.ParseIP(s) == nil {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidAddress, raw)
	}
	return s, nil
}
