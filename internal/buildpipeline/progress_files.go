package buildpipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
)

// DisplayName shortens path for progress output: relative to baseDir when it
// lies under it, slash-separated.
func DisplayName(path, baseDir string) string {
	p := filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if rel, err := filepath.Rel(base, p); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}

// phaseObserver turns driver phase events into per-file progress events.
// Batch phases (declare, check) are fanned out to every loaded file.
type phaseObserver struct {
	sink    ProgressSink
	names   map[string]string // путь -> отображаемое имя
	files   []string          // отображаемые имена в порядке пакета
	failed  map[string]bool
	timings *Timings
}

func newPhaseObserver(sink ProgressSink, paths []string, baseDir string, timings *Timings) *phaseObserver {
	p := &phaseObserver{
		sink:    sink,
		names:   make(map[string]string, len(paths)),
		files:   make([]string, 0, len(paths)),
		failed:  make(map[string]bool),
		timings: timings,
	}
	for _, path := range paths {
		name := DisplayName(path, baseDir)
		p.names[path] = name
		p.files = append(p.files, name)
	}
	return p
}

func stageOf(phase string) (Stage, bool) {
	switch phase {
	case driver.PhaseLoad, driver.PhaseParse:
		return StageParse, true
	case driver.PhaseDeclare, driver.PhaseCheck:
		return StageCheck, true
	case driver.PhaseCodegen, driver.PhaseOptimize:
		return StageCodegen, true
	}
	return "", false
}

// OnPhase updates the progress view based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage, ok := stageOf(ev.Name)
	if !ok {
		return
	}
	if ev.Status == driver.PhaseEnd {
		p.timings.Add(stage, ev.Elapsed)
	}
	if p.sink == nil {
		return
	}
	if ev.File == "" {
		// declare/check: одно событие на весь пакет
		status := StatusWorking
		if ev.Status == driver.PhaseEnd && ev.Name == driver.PhaseCheck {
			status = StatusDone
		}
		p.fanOut(stage, status, ev.Elapsed)
		return
	}
	name := p.names[ev.File]
	if name == "" {
		name = ev.File
	}
	switch {
	case ev.Status == driver.PhaseStart:
		if ev.Name == driver.PhaseLoad {
			return // load и parse показываем одной стадией
		}
		p.sink.OnEvent(Event{File: name, Stage: stage, Status: StatusWorking})
	case ev.Failed:
		p.failed[name] = true
		p.sink.OnEvent(Event{File: name, Stage: stage, Status: StatusError, Elapsed: ev.Elapsed})
	case ev.Name != driver.PhaseLoad:
		p.sink.OnEvent(Event{File: name, Stage: stage, Status: StatusDone, Elapsed: ev.Elapsed})
	}
}

func (p *phaseObserver) fanOut(stage Stage, status Status, elapsed time.Duration) {
	for _, file := range p.files {
		if p.failed[file] {
			continue
		}
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: status, Elapsed: elapsed})
	}
}

// markFailed reports the final state of files whose diagnostics carry
// errors found after their own phases ended (in check, usually).
func (p *phaseObserver) markFailed(res *driver.Result) {
	if p.sink == nil || res == nil {
		return
	}
	for i := range res.Files {
		f := &res.Files[i]
		name := p.names[f.Path]
		if name == "" || p.failed[name] || !f.HasErrors() {
			continue
		}
		p.failed[name] = true
		p.sink.OnEvent(Event{File: name, Stage: StageCheck, Status: StatusError})
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
