package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var errNotFound = errors.New("resource not found")

const filePermissions = 0o644

// ResourceInfo describes a regular file under the document root.
type ResourceInfo struct {
	LocalFilePath string
	Content       []byte
	ETag          string
}

// resolveFilePath maps a file name taken from the request path onto the
// document root. Names that would leave the root are reported as not found.
func resolveFilePath(root, name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", errNotFound, name)
	}
	return filepath.Join(root, filepath.FromSlash(name)), nil
}

func readResource(root, name string) (ResourceInfo, error) {
	localFilePath, err := resolveFilePath(root, name)
	if err != nil {
		return ResourceInfo{}, err
	}

	fileInfo, err := os.Stat(localFilePath)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ResourceInfo{}, fmt.Errorf("%w: %v", errNotFound, err)
	}
	if err != nil {
		return ResourceInfo{}, err
	}
	if !fileInfo.Mode().IsRegular() {
		return ResourceInfo{}, fmt.Errorf("%w: %s is not a regular file", errNotFound, localFilePath)
	}

	content, err := os.ReadFile(localFilePath)
	if err != nil {
		return ResourceInfo{}, fmt.Errorf("read %s: %w", localFilePath, err)
	}

	return ResourceInfo{
		LocalFilePath: localFilePath,
		Content:       content,
		ETag:          generateETag(content),
	}, nil
}

// writeResource replaces the file with content. Concurrent writers to the
// same name are not serialized; the last one to finish wins.
func writeResource(root, name string, content []byte) (string, error) {
	localFilePath, err := resolveFilePath(root, name)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(localFilePath, content, filePermissions); err != nil {
		return "", fmt.Errorf("write %s: %w", localFilePath, err)
	}
	return localFilePath, nil
}
