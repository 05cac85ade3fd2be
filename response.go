package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	contentTypeText   = "text/plain"
	contentTypeBinary = "application/octet-stream"
)

var (
	statusOK                  = statusLine(http.StatusOK)
	statusCreated             = statusLine(http.StatusCreated)
	statusNotModified         = statusLine(http.StatusNotModified)
	statusBadRequest          = statusLine(http.StatusBadRequest)
	statusNotFound            = statusLine(http.StatusNotFound)
	statusInternalServerError = statusLine(http.StatusInternalServerError)
)

func statusLine(status int) string {
	return fmt.Sprintf("HTTP/1.1 %d %s", status, http.StatusText(status))
}

// Response is the structured form of what gets written back to the client.
// A response with HasBody set always carries Content-Type and Content-Length.
type Response struct {
	StatusLine string
	Headers    []Header
	HasBody    bool
	Body       []byte
}

// Canned responses without a body
var (
	responseOK                  = Response{StatusLine: statusOK}
	responseCreated             = Response{StatusLine: statusCreated}
	responseBadRequest          = Response{StatusLine: statusBadRequest}
	responseNotFound            = Response{StatusLine: statusNotFound}
	responseInternalServerError = Response{StatusLine: statusInternalServerError}
)

// newBodyResponse builds a response whose Content-Length is computed from body.
func newBodyResponse(statusLine, contentType string, body []byte, extra ...Header) Response {
	headers := []Header{
		{Name: "Content-Type", Value: contentType},
		{Name: "Content-Length", Value: strconv.Itoa(len(body))},
	}
	headers = append(headers, extra...)

	return Response{
		StatusLine: statusLine,
		Headers:    headers,
		HasBody:    true,
		Body:       body,
	}
}

// Status returns the numeric code from the status line, or 0 if it has none.
func (r Response) Status() int {
	fields := strings.Fields(r.StatusLine)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

func (r Response) Bytes() []byte {
	if r.HasBody {
		body := r.Body
		if body == nil {
			body = []byte{}
		}
		return buildResponse(r.StatusLine, r.Headers, body)
	}
	return buildResponse(r.StatusLine, r.Headers, nil)
}

// buildResponse joins the status line and headers with CRLF. A non-nil body
// is framed by a blank line before it and a blank line after it. Without a
// body the header block is just terminated by the blank line.
func buildResponse(statusLine string, headers []Header, body []byte) []byte {
	var buf bytes.Buffer

	buf.WriteString(statusLine)
	for _, header := range headers {
		buf.WriteString(crlf)
		buf.WriteString(header.String())
	}

	// Signify the end of the header section using CRLF
	buf.WriteString(headerBodyBoundary)

	if body != nil {
		buf.Write(body)
		buf.WriteString(headerBodyBoundary)
	}

	return buf.Bytes()
}
