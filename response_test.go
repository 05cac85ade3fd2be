package main

import (
	"testing"
)

func TestBuildResponseWithBody(t *testing.T) {
	res := newBodyResponse(statusOK, contentTypeText, []byte("abc"))
	expectEqual(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc\r\n\r\n", string(res.Bytes()))
}

func TestBuildResponseEmptyBody(t *testing.T) {
	res := newBodyResponse(statusOK, contentTypeText, nil)
	expectEqual(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 0\r\n\r\n\r\n\r\n", string(res.Bytes()))
}

func TestCannedResponses(t *testing.T) {
	expectEqual(t, "HTTP/1.1 200 OK\r\n\r\n", string(responseOK.Bytes()))
	expectEqual(t, "HTTP/1.1 201 Created\r\n\r\n", string(responseCreated.Bytes()))
	expectEqual(t, "HTTP/1.1 404 Not Found\r\n\r\n", string(responseNotFound.Bytes()))
}

func TestBuildResponseHeadersOnly(t *testing.T) {
	out := buildResponse(statusNotModified, []Header{{Name: "ETag", Value: `"1"`}}, nil)
	expectEqual(t, "HTTP/1.1 304 Not Modified\r\nETag: \"1\"\r\n\r\n", string(out))
}

func TestResponseStatus(t *testing.T) {
	check := func(res Response, expect int) {
		t.Helper()
		if actual := res.Status(); actual != expect {
			t.Errorf("got %d, want %d", actual, expect)
		}
	}
	check(responseOK, 200)
	check(responseCreated, 201)
	check(responseBadRequest, 400)
	check(responseInternalServerError, 500)
	check(Response{StatusLine: "garbage"}, 0)
}

func TestStatusLine(t *testing.T) {
	expectEqual(t, "HTTP/1.1 201 Created", statusLine(201))
	expectEqual(t, "HTTP/1.1 304 Not Modified", statusLine(304))
	expectEqual(t, "HTTP/1.1 500 Internal Server Error", statusLine(500))
}
