package locallist

import (
	"fmt"
	"os"

	logpkg "github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/domain"
)

// LoadFile parses the list at path.
func LoadFile(path string, logger logpkg.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open local list: %w", err)
	}
	defer func() { _ = f.Close() }()

	names, err := Parse(f, path, logger)
	if err != nil {
		return nil, fmt.Errorf("parse local list %s: %w", path, err)
	}
	return names, nil
}

// Load builds a DomainBlocklist from optional allow and block files. An empty
// path contributes nothing. Returns nil when both paths are empty.
func Load(allowPath, blockPath string, logger logpkg.Logger) (*domain.DomainBlocklist, error) {
	if allowPath == "" && blockPath == "" {
		return nil, nil
	}
	var allow, block []string
	var err error
	if allowPath != "" {
		if allow, err = LoadFile(allowPath, logger); err != nil {
			return nil, err
		}
	}
	if blockPath != "" {
		if block, err = LoadFile(blockPath, logger); err != nil {
			return nil, err
		}
	}
	logpkg.OrNoop(logger).Info(map[string]any{"allow": len(allow), "block": len(block)}, "local lists loaded")
	return domain.NewDomainBlocklist(allow, block), nil
}
