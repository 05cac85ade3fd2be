package main

import (
	"fmt"
	"hash/fnv"
)

func getFNVHash(blob []byte) uint64 {
	// Fast non cryptographic hash
	h := fnv.New64a()
	h.Write(blob)
	return h.Sum64()
}

// generateETag returns a strong entity tag derived from the file contents.
func generateETag(content []byte) string {
	return fmt.Sprintf("\"%x\"", getFNVHash(content))
}
