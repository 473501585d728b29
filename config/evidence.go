package config

import (
	"os"
	"strconv"
	"strings"
)

// EvidenceConfig holds upload limits and the storage root for evidence
// files. It is built once at startup and handed to the evidence service
// rather than read from the environment on every request.
type EvidenceConfig struct {
	AllowedExtensions map[string]bool
	MaxFileSize       int64
	UploadRoot        string
}

const defaultMaxFileSize = 10 * 1024 * 1024 // 10MB

var defaultAllowedExtensions = []string{"pdf", "docx", "xlsx", "png", "jpg", "jpeg"}

// LoadEvidenceConfig reads UPLOAD_PATH, MAX_UPLOAD_BYTES and
// ALLOWED_EXTENSIONS (comma separated, no dots) with sensible defaults.
func LoadEvidenceConfig() EvidenceConfig {
	cfg := EvidenceConfig{
		AllowedExtensions: make(map[string]bool),
		MaxFileSize:       defaultMaxFileSize,
		UploadRoot:        "./uploads",
	}

	if root := os.Getenv("UPLOAD_PATH"); root != "" {
		cfg.UploadRoot = root
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSize = n
		}
	}

	exts := defaultAllowedExtensions
	if raw := os.Getenv("ALLOWED_EXTENSIONS"); raw != "" {
		exts = strings.Split(raw, ",")
	}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext != "" {
			cfg.AllowedExtensions[ext] = true
		}
	}

	return cfg
}
