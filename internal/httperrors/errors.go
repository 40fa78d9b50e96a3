// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns backend transport failures into short hints for
// the terminal.
package httperrors

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/logging"
)

// Category classifies a failed backend call.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryTimeout
	CategoryDNS
	CategoryRefused
	CategoryTLS
	CategoryServer
)

// Classify inspects err and reports which kind of failure it is.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryGeneric
	case isTimeoutError(err):
		return CategoryTimeout
	case isDNSError(err):
		return CategoryDNS
	case isConnectionRefusedError(err):
		return CategoryRefused
	case isSSLError(err):
		return CategoryTLS
	case isServerError(err):
		return CategoryServer
	default:
		return CategoryGeneric
	}
}

// Describe returns a one-paragraph hint for err, naming the backend host.
func Describe(err error, backendURL string) string {
	host := ExtractHostFromURL(backendURL)
	switch Classify(err) {
	case CategoryTimeout:
		return "The task backend at " + host + " took too long to respond. It may be busy; try again shortly."
	case CategoryDNS:
		return "Cannot resolve " + host + ". Check the --backend address and your DNS settings."
	case CategoryRefused:
		return "Nothing is listening at " + host + ". Start the task backend or point --backend at it."
	case CategoryTLS:
		return "A secure connection to " + host + " could not be established. Check certificates and proxy settings."
	case CategoryServer:
		return "The task backend at " + host + " reported an internal error. This is not a problem with your setup."
	default:
		return "Cannot reach the task backend at " + host + "."
	}
}

// Print shows a formatted error for a failed action such as "executing task".
func Print(err error, action, backendURL string) {
	if err == nil {
		return
	}
	pterm.Error.Printf("Failed while %s\n", action)
	pterm.Println(Describe(err, backendURL))
	details := logging.Mask(err.Error())
	if len(details) > 160 {
		details = details[:160] + "..."
	}
	pterm.Debug.Printf("Technical details: %s\n", details)
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError reports 5xx responses from the backend.
func isServerError(err error) bool {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
