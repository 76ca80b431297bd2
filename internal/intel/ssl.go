package intel

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"
)

// SSLProbe checks whether a domain serves HTTPS and whether its
// certificate verifies. The payload never errors outward: a failed
// handshake simply means https_enabled=false.
type SSLProbe struct {
	timeout time.Duration
}

func NewSSLProbe(timeout time.Duration) *SSLProbe {
	return &SSLProbe{timeout: timeout}
}

func (s *SSLProbe) Fetch(domain string) (map[string]any, error) {
	conn, err := tls.DialWithDialer(&net.Dialer{
		Timeout: s.timeout,
	}, "tcp", domain+":443", &tls.Config{
		ServerName: domain,
	})

	if err != nil {
		if isCertError(err) {
			// The port answers TLS but the chain does not verify. Redial
			// without verification to capture issuer details for the report.
			return s.fetchInsecure(domain), nil
		}
		// No TLS listener at all.
		return map[string]any{
			"https_enabled": false,
			"ssl_valid":     false,
		}, nil
	}
	defer conn.Close()

	payload := map[string]any{
		"https_enabled": true,
	}

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		payload["ssl_valid"] = false
		return payload, nil
	}

	cert := state.PeerCertificates[0]
	now := time.Now()
	payload["ssl_valid"] = now.After(cert.NotBefore) && now.Before(cert.NotAfter)
	payload["ssl_issuer"] = cert.Issuer.CommonName
	payload["ssl_expiry"] = cert.NotAfter.Format(time.RFC3339)

	return payload, nil
}

func (s *SSLProbe) fetchInsecure(domain string) map[string]any {
	payload := map[string]any{
		"https_enabled": true,
		"ssl_valid":     false,
	}

	conn, err := tls.DialWithDialer(&net.Dialer{
		Timeout: s.timeout,
	}, "tcp", domain+":443", &tls.Config{
		ServerName:         domain,
		InsecureSkipVerify: true, // details only, validity already failed
	})
	if err != nil {
		return payload
	}
	defer conn.Close()

	if certs := conn.ConnectionState().PeerCertificates; len(certs) > 0 {
		payload["ssl_issuer"] = certs[0].Issuer.CommonName
		payload["ssl_expiry"] = certs[0].NotAfter.Format(time.RFC3339)
	}
	return payload
}

func isCertError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostnameErr      x509.HostnameError
		invalidCert      x509.CertificateInvalidError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidCert)
}
