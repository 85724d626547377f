package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/e2eprotect/e2e"
)

// e2ectl applies a single E2E profile operation to a hex-encoded buffer,
// read from stdin or a file, and writes the result to stdout. It is meant
// for bench scripts and interactive exploration of a profile's wire format,
// not as a production integration point.
func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	var (
		flagConfig = ""
		flagOp     = "protect"
		flagInput  = ""
		flagVerify = false
		flagSeal   = false
		flagDebug  = false
	)
	flag.StringVar(&flagConfig, "config", flagConfig, "Path to a YAML profile configuration.")
	flag.StringVar(&flagOp, "op", flagOp, "Operation to perform: protect or check.")
	flag.StringVar(&flagInput, "in", flagInput, "Path to a hex-encoded input buffer, or - for stdin.")
	flag.BoolVar(&flagVerify, "verify", flagVerify, "With -op check, exit nonzero unless the status is Ok or OkSomeLost.")
	flag.BoolVar(&flagSeal, "seal", flagSeal, "Log a BLAKE2b-256 digest of the buffer after the operation, as an audit trail outside the E2E protocol itself.")
	flag.BoolVar(&flagDebug, "debug", flagDebug, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flagConfig == "" {
		return errors.New("-config is required")
	}
	cfg, err := LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	profile, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building profile %q: %w", cfg.Profile, err)
	}
	log.Debug("profile built", "kind", cfg.Profile)

	raw, err := readInput(flagInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	data, err := hex.DecodeString(string(raw))
	if err != nil {
		return fmt.Errorf("decoding hex input: %w", err)
	}

	switch flagOp {
	case "protect":
		if err := profile.Protect(data); err != nil {
			return fmt.Errorf("Protect: %w", err)
		}
		log.Debug("protected", "bytes", len(data))
	case "check":
		status, err := profile.Check(data)
		if err != nil {
			return fmt.Errorf("Check: %w", err)
		}
		log.Info("checked", "status", status.String())
		if flagVerify && status != e2e.Ok && status != e2e.OkSomeLost {
			return fmt.Errorf("check failed: %s", status)
		}
	default:
		return fmt.Errorf("unknown -op %q, want protect or check", flagOp)
	}

	if flagSeal {
		sum := blake2b.Sum256(data)
		log.Info("sealed", "blake2b256", hex.EncodeToString(sum[:]))
	}

	fmt.Println(hex.EncodeToString(data))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
