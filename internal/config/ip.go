package config

import (
	"context"
	"net"
	"strings"
)

// BindIP returns "peer.discovery.bind.ip" when set. Otherwise the address
// is looked up once and cached for the life of p; a failed lookup yields
// 0.0.0.0. The lookup may block for as long as the transport allows, so
// BindIP must not be called on latency-sensitive paths.
func (p *Properties) BindIP() string {
	if v := strings.TrimSpace(Get(p, KeyDiscoveryBindIP, "")); v != "" {
		return v
	}

	p.bindMu.Lock()
	defer p.bindMu.Unlock()

	if p.bindIP != "" {
		return p.bindIP
	}

	p.log.Info().Msg("Bind address wasn't set, punching to identify it...")
	ip, err := p.bindRes.Resolve(p.log.WithContext(context.Background()))
	if err == nil && net.ParseIP(strings.TrimSpace(ip)) == nil {
		err = &net.ParseError{Type: "IP address", Text: ip}
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("Can't get bind IP. Fall back to " + defaultBindIP)
		p.bindIP = defaultBindIP
		return p.bindIP
	}

	p.bindIP = strings.TrimSpace(ip)
	p.log.Info().Str("ip", p.bindIP).Msg("UDP local bound")
	return p.bindIP
}

// ExternalIP returns "peer.discovery.external.ip" when set. Otherwise the
// address is looked up once and cached for the life of p; a failed lookup or
// an answer that is not an IP falls back to BindIP. Like BindIP it may
// block.
func (p *Properties) ExternalIP() string {
	if v := strings.TrimSpace(Get(p, KeyDiscoveryExternalIP, "")); v != "" {
		return v
	}

	p.extMu.Lock()
	defer p.extMu.Unlock()

	if p.extIP != "" {
		return p.extIP
	}

	p.log.Info().Msg("External IP wasn't set, probing to identify it...")
	ip, err := p.extRes.Resolve(p.log.WithContext(context.Background()))
	if err == nil && net.ParseIP(strings.TrimSpace(ip)) == nil {
		err = &net.ParseError{Type: "IP address", Text: ip}
	}
	if err != nil {
		p.extIP = p.BindIP()
		p.log.Warn().Err(err).Str("ip", p.extIP).Msg("Can't get external IP. Fall back to bind ip")
		return p.extIP
	}

	p.extIP = strings.TrimSpace(ip)
	p.log.Info().Str("ip", p.extIP).Msg("External address identified")
	return p.extIP
}
