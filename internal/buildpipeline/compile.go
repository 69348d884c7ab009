package buildpipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

// ErrDiagnostics is returned when the batch compiled with errors. The
// diagnostics themselves are in CompileResult.Compile.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	Env      *project.Environment
	Files    []string
	BaseDir  string // для коротких имён в прогрессе
	Options  driver.Options
	Jobs     int
	Progress ProgressSink
	// Cache, when set, short-circuits a batch whose inputs, options and
	// environment match an earlier error-free run.
	Cache *driver.DiskCache
}

// CompileResult captures compilation artefacts and stage timings. Compile is
// nil when the objects came from the cache.
type CompileResult struct {
	Compile *driver.Result
	Objects []*driver.Object
	Key     project.Digest
	Cached  bool
	// CacheErr is a failed cache write; the objects are still valid.
	CacheErr error
	Timings  Timings
}

// Compile loads, compiles and, without errors, turns every generated script
// into an object image.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if req.Env == nil {
		return result, fmt.Errorf("missing compiler environment")
	}

	obs := newPhaseObserver(req.Progress, req.Files, req.BaseDir, &result.Timings)
	emitQueued(req.Progress, obs.files)

	inputs, err := driver.LoadSources(ctx, req.Files, req.Jobs)
	if err != nil {
		emitStage(req.Progress, obs.files, StageParse, StatusError, err, 0)
		return result, err
	}

	result.Key = driver.BatchKey(req.Env, inputs, req.Options)
	if req.Cache != nil {
		var payload driver.CachePayload
		if ok, _ := req.Cache.Get(result.Key, &payload); ok {
			result.Cached = true
			for i := range payload.Objects {
				result.Objects = append(result.Objects, &payload.Objects[i])
			}
			emitStage(req.Progress, obs.files, StageCodegen, StatusCached, nil, 0)
			return result, nil
		}
	}

	opts := req.Options
	opts.Observer = obs.OnPhase
	res, err := driver.Compile(ctx, inputs, req.Env, opts)
	if err != nil {
		emitStage(req.Progress, obs.files, StageParse, StatusError, err, 0)
		return result, err
	}
	result.Compile = res
	obs.markFailed(res)
	if res.HasErrors() {
		return result, ErrDiagnostics
	}

	for _, s := range res.Scripts() {
		result.Objects = append(result.Objects, driver.NewObject(s, req.Env.Instructions))
	}
	if req.Cache != nil {
		payload := &driver.CachePayload{FilePaths: req.Files}
		for _, o := range result.Objects {
			payload.Objects = append(payload.Objects, *o)
		}
		result.CacheErr = req.Cache.Put(result.Key, payload)
	}
	return result, nil
}
