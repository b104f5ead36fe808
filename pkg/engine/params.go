package engine

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rabbitai/sqlkit/pkg/core"
)

// Stubbed in tests; real network calls otherwise.
var (
	lookupHost  = net.LookupHost
	dialTimeout = net.DialTimeout
)

const portProbeTimeout = 5 * time.Second

// SupportsParameters reports whether the engine can build a connection URI
// from structured parameters.
func (s *Spec) SupportsParameters() bool { return s.uriScheme != "" }

// BuildURI assembles a connection URI from structured parameters. With
// Encryption set, the engine's encryption query parameters are merged in.
// ParametersFromURI is its inverse modulo that normalization.
func (s *Spec) BuildURI(p core.Parameters) (string, error) {
	if !s.SupportsParameters() {
		return "", fmt.Errorf("engine %s does not support structured parameters", s.name)
	}
	u := &url.URL{Scheme: s.uriScheme, Path: "/" + p.Database}
	if p.Port > 0 {
		u.Host = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	} else {
		u.Host = p.Host
	}
	if p.Username != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.Username, p.Password)
		} else {
			u.User = url.User(p.Username)
		}
	}
	q := url.Values{}
	for k, v := range p.Query {
		q.Set(k, v)
	}
	if p.Encryption {
		for k, v := range s.encryptionParams {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParametersFromURI decomposes a connection URI back into structured
// parameters. The Encryption flag is derived from the presence of the
// engine's encryption parameters, which are then stripped from Query.
func (s *Spec) ParametersFromURI(uri string) (core.Parameters, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return core.Parameters{}, fmt.Errorf("invalid connection URI: %w", err)
	}
	p := core.Parameters{
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
	}
	if ps := u.Port(); ps != "" {
		p.Port, _ = strconv.Atoi(ps)
	}
	if u.User != nil {
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
	}
	q := u.Query()
	if len(s.encryptionParams) > 0 {
		enc := true
		for k, v := range s.encryptionParams {
			if q.Get(k) != v {
				enc = false
				break
			}
		}
		if enc {
			p.Encryption = true
			for k := range s.encryptionParams {
				q.Del(k)
			}
		}
	}
	if len(q) > 0 {
		p.Query = make(map[string]string, len(q))
		for k := range q {
			p.Query[k] = q.Get(k)
		}
	}
	return p, nil
}

// ValidateParameters progressively validates connection parameters:
// required fields, then hostname resolution, then port range, then port
// reachability. Validation short-circuits at the first failing category so
// a closed port is never reported for a hostname that doesn't resolve.
// Returns nil when everything checks out.
func (s *Spec) ValidateParameters(p core.Parameters) []*core.Error {
	var missing []string
	if p.Host == "" {
		missing = append(missing, "host")
	}
	if p.Port == 0 {
		missing = append(missing, "port")
	}
	if p.Username == "" {
		missing = append(missing, "username")
	}
	if p.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return []*core.Error{core.NewError(
			core.ConnectionMissingParametersError,
			fmt.Sprintf("One or more parameters are missing: %s", strings.Join(missing, ", ")),
			core.SeverityWarning,
			map[string]any{"missing": missing},
		)}
	}

	if _, err := lookupHost(p.Host); err != nil {
		return []*core.Error{core.NewError(
			core.ConnectionInvalidHostnameError,
			fmt.Sprintf("The hostname %q provided can't be resolved.", p.Host),
			core.SeverityError,
			map[string]any{"hostname": p.Host},
		)}
	}

	if p.Port < 0 || p.Port > 65535 {
		return []*core.Error{core.NewError(
			core.ConnectionInvalidPortError,
			"The port must be an integer between 0 and 65535 (inclusive).",
			core.SeverityError,
			map[string]any{"port": p.Port},
		)}
	}

	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	conn, err := dialTimeout("tcp", addr, portProbeTimeout)
	if err != nil {
		return []*core.Error{core.NewError(
			core.ConnectionPortClosedError,
			fmt.Sprintf("The port %d on hostname %q can't be reached.", p.Port, p.Host),
			core.SeverityError,
			map[string]any{"hostname": p.Host, "port": p.Port},
		)}
	}
	_ = conn.Close()
	return nil
}
