package main

import (
	"errors"
	"fmt"
	"strings"
)

const (
	crlf = "\r\n"
	// An empty line separates the header block from the body
	headerBodyBoundary = crlf + crlf
)

var errMalformedRequest = errors.New("malformed request")

// Request is one parsed HTTP request. Headers are kept as the raw
// "Name: value" lines in the order they were received.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers []string

	// HasBody reports whether the boundary was present. A request with a
	// boundary followed by nothing has an empty, but present, body.
	HasBody bool
	Body    []byte
}

func parseRequest(raw []byte) (Request, error) {
	text := string(raw)

	head, body, hasBody := strings.Cut(text, headerBodyBoundary)

	lines := strings.Split(head, crlf)

	method, path, version, err := parseRequestLine(lines[0])
	if err != nil {
		return Request{}, err
	}

	request := Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: lines[1:],
		HasBody: hasBody,
	}
	if hasBody {
		request.Body = []byte(body)
	}

	return request, nil
}

func parseRequestLine(requestLine string) (string, string, string, error) {
	// Request-Line is "METHOD SP PATH SP VERSION"
	parts := strings.Fields(requestLine)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: request line %q", errMalformedRequest, requestLine)
	}

	method, path, version := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(path, "/") {
		return "", "", "", fmt.Errorf("%w: path %q", errMalformedRequest, path)
	}

	return method, path, version, nil
}

// Header returns the trimmed value of the first header named name.
func (r Request) Header(name string) (string, bool) {
	return lookupHeader(r.Headers, name)
}
