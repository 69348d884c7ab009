// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutputDir string
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	CompileResult
	Written []string
}

// Build compiles the batch and writes one msgpack object per script below
// OutputDir. Nothing is written when any file has errors.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.OutputDir == "" {
		return result, fmt.Errorf("missing output directory")
	}

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.CompileResult = compileRes
	if err != nil {
		return result, err
	}

	files := newPhaseObserver(nil, req.Files, req.BaseDir, nil).files
	emitStart := time.Now()
	emitStage(req.Progress, nil, StageEmit, StatusWorking, nil, 0)
	for _, o := range result.Objects {
		path := filepath.Join(req.OutputDir, o.FileName())
		if err := writeObject(path, o.Encode); err != nil {
			err = fmt.Errorf("failed to write object %q: %w", path, err)
			emitStage(req.Progress, files, StageEmit, StatusError, err, 0)
			return result, err
		}
		result.Written = append(result.Written, path)
	}
	elapsed := time.Since(emitStart)
	result.Timings.Add(StageEmit, elapsed)
	emitStage(req.Progress, files, StageEmit, StatusDone, nil, elapsed)
	return result, nil
}

// writeObject writes through a temp file and renames it into place, so a
// failed build never leaves a truncated object.
func writeObject(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".obj-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
