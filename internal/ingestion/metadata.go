package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Metadata describes an ingested input
type Metadata struct {
	Source    string `json:"source,omitempty"` // file path or upload name
	Timestamp string `json:"timestamp"`        // RFC3339 format
	Hash      string `json:"hash"`             // SHA256 hex digest
	Bytes     int    `json:"bytes"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Bytes:     len(content),
	}
}

// ContentHash hashes several inputs into one digest; part boundaries are significant
func ContentHash(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ShortHash returns the first 12 characters of the digest
func (m *Metadata) ShortHash() string {
	return m.Hash[:min(12, len(m.Hash))]
}

// String summarizes the input for verbose output
func (m *Metadata) String() string {
	return fmt.Sprintf("%s (%d bytes, sha256 %s)", m.Source, m.Bytes, m.ShortHash())
}
