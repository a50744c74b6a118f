package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api"
)

// ProbeReadiness checks that all server components are wired and a key source is
// available. Each check adds a human readable line to the result.
func ProbeReadiness(ctx context.Context, s *api.Server) ([]string, []error) {
	var str []string
	var errs []error

	if err := ctx.Err(); err != nil {
		return append(str, "Readiness probe cancelled."), append(errs, err)
	}

	if !s.Ready() {
		errs = append(errs, errors.New("server is not fully initialized"))
		str = append(str, "Server components: not initialized.")
	} else {
		str = append(str, "Server components: initialized.")
	}

	if s.Seed == nil || !s.Seed.IsInitialized() {
		errs = append(errs, errors.New("key source is not initialized"))
		str = append(str, "Key source: not initialized.")
	} else {
		str = append(str, "Key source: initialized.")
	}

	return str, errs
}

// ProbeLiveness runs the readiness probe and additionally checks that the
// configured paths are writeable
func ProbeLiveness(ctx context.Context, s *api.Server) ([]string, []error) {
	str, errs := ProbeReadiness(ctx, s)

	for _, path := range s.Config.Management.ProbeWriteablePathsAbs {
		start := time.Now()
		touchfile := filepath.Join(path, s.Config.Management.ProbeWriteableTouchfile)

		if err := touch(touchfile); err != nil {
			errs = append(errs, errors.Wrapf(err, "path %q is not writeable", path))
			str = append(str, fmt.Sprintf("Writeable path %s: failed.", path))
			continue
		}

		str = append(str, fmt.Sprintf("Writeable path %s: ok (%v).", path, time.Since(start)))
	}

	return str, errs
}

func touch(file string) error {
	f, err := os.OpenFile(file, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	now := time.Now()
	return os.Chtimes(file, now, now)
}
