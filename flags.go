package dsum

import (
	"fmt"
	"strconv"
	"strings"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

// ParseArgs builds a RunConfig from a dsum-style argument list, where each
// flag has the form "/name:value". Values may be quoted with embedded
// spaces ("/out:\"my manifest.bin\""), and integer values accept a leading
// "0x" for hex, exactly as GetArg parses them in the original C++ tool
// this package's flag syntax is modeled on.
//
// Unlike GetArg, which scans the raw command line for a "/name:" substring
// (and so tolerates flags in any order, repeated, or interleaved with
// other text), ParseArgs takes pre-split argv-style tokens — the same
// surface, reached the normal Go way.
func ParseArgs(args []string) (RunConfig, error) {
	var cfg RunConfig
	var haveDisk, haveOut, haveAlign bool

	for _, tok := range args {
		name, value, ok := splitFlag(tok)
		if !ok {
			continue
		}

		switch name {
		case "disk":
			cfg.DevicePath = value
			haveDisk = true
		case "out":
			cfg.OutputPath = value
			haveOut = true
		case "align":
			n, err := parseFlagInt(value)
			if err != nil {
				return cfg, fmt.Errorf("dsum: invalid /align: %w", err)
			}
			cfg.ChunkAlign = n
			haveAlign = true
		case "iosize":
			n, err := parseFlagInt(value)
			if err != nil {
				return cfg, fmt.Errorf("dsum: invalid /iosize: %w", err)
			}
			cfg.IOBlockSize = n
		case "iodepth":
			n, err := parseFlagInt(value)
			if err != nil {
				return cfg, fmt.Errorf("dsum: invalid /iodepth: %w", err)
			}
			cfg.QueueDepth = int(n)
		case "threads":
			n, err := parseFlagInt(value)
			if err != nil {
				return cfg, fmt.Errorf("dsum: invalid /threads: %w", err)
			}
			cfg.ThreadCount = int(n)
		case "bytes":
			n, err := parseFlagInt(value)
			if err != nil {
				return cfg, fmt.Errorf("dsum: invalid /bytes: %w", err)
			}
			cfg.DiskBytes = n
		}
	}

	if !haveDisk {
		return cfg, dsumerrors.ErrMissingDevicePath
	}
	if !haveOut {
		return cfg, dsumerrors.ErrMissingOutputPath
	}
	if !haveAlign {
		return cfg, dsumerrors.ErrMissingChunkAlign
	}

	return cfg, nil
}

// splitFlag splits a "/name:value" token, stripping one layer of quotes
// from a quoted value. ok is false for tokens that aren't dsum flags.
func splitFlag(tok string) (name, value string, ok bool) {
	if !strings.HasPrefix(tok, "/") {
		return "", "", false
	}
	tok = tok[1:]

	i := strings.IndexByte(tok, ':')
	if i < 0 {
		return "", "", false
	}
	name = strings.ToLower(tok[:i])
	value = tok[i+1:]

	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	return name, value, true
}

// parseFlagInt parses a decimal or (with a "0x" prefix) hexadecimal
// unsigned integer, matching GetArg's bInteger path in the original.
func parseFlagInt(s string) (uint64, error) {
	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	return strconv.ParseUint(s, base, 64)
}
