package main

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

const (
	routeEcho      = "echo"
	routeUserAgent = "user-agent"
	routeFiles     = "files"
)

// dispatch maps every request to exactly one response. Filesystem failures
// are turned into status codes here and never reach the caller.
func dispatch(ctx context.Context, request Request, config Config) Response {
	path := request.Path
	// Route predicates match on the first path segment only
	segment := firstSegment(path)

	switch {
	case path == "/":
		return responseOK

	case segment == routeEcho:
		return serveEcho(path)

	case segment == routeUserAgent:
		return serveUserAgent(request)

	case request.Method == "POST" && config.documentRoot != "" && segment == routeFiles:
		return storeFile(ctx, request, config)

	case request.Method == "GET" && config.documentRoot != "" && segment == routeFiles:
		return serveFile(ctx, request, config)
	}

	return responseNotFound
}

// firstSegment returns the text between the leading slash and the next one.
func firstSegment(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return segment
}

// extractName strips the first path segment: everything strictly after the
// first '/' following index 0. ok is false when there is no such '/'.
func extractName(path string) (name string, ok bool) {
	if len(path) < 2 {
		return "", false
	}
	i := strings.IndexByte(path[1:], '/')
	if i < 0 {
		return "", false
	}
	return path[i+2:], true
}

func serveEcho(path string) Response {
	text, ok := extractName(path)
	if !ok {
		return responseNotFound
	}
	return newBodyResponse(statusOK, contentTypeText, []byte(text))
}

func serveUserAgent(request Request) Response {
	userAgent, ok := request.Header("User-Agent")
	if !ok {
		return responseBadRequest
	}
	return newBodyResponse(statusOK, contentTypeText, []byte(userAgent))
}

func storeFile(ctx context.Context, request Request, config Config) Response {
	logger := zerolog.Ctx(ctx)

	name, ok := extractName(request.Path)
	if !ok {
		return responseNotFound
	}

	localFilePath, err := writeResource(config.documentRoot, name, request.Body)
	if errors.Is(err, errNotFound) {
		logger.Debug().Err(err).Str("name", name).Msg("Rejected file name")
		return responseNotFound
	}
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error writing file")
		return responseInternalServerError
	}

	logger.Debug().Str("file", localFilePath).Int("bytes", len(request.Body)).Msg("Stored file")
	return responseCreated
}

func serveFile(ctx context.Context, request Request, config Config) Response {
	logger := zerolog.Ctx(ctx)

	name, ok := extractName(request.Path)
	if !ok {
		return responseNotFound
	}

	resourceInfo, err := readResource(config.documentRoot, name)
	if err != nil {
		if !errors.Is(err, errNotFound) {
			logger.Warn().Err(err).Str("name", name).Msg("Error reading file")
		}
		return responseNotFound
	}

	etag := Header{Name: "ETag", Value: resourceInfo.ETag}

	// The client sends back the last ETag it saw in If-None-Match. When it
	// still matches, the cached copy is fresh and no body is sent.
	if clientETag, ok := request.Header("If-None-Match"); ok && clientETag == resourceInfo.ETag {
		return Response{StatusLine: statusNotModified, Headers: []Header{etag}}
	}

	return newBodyResponse(statusOK, contentTypeBinary, resourceInfo.Content, etag)
}
