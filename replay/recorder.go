package replay

import "sync"

// Recorder collects frames for a trace. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	trace Trace
}

func NewRecorder(level, revision string) *Recorder {
	return &Recorder{trace: Trace{Version: Version, Level: level, Revision: revision}}
}

// Record appends a frame. Samples are copied.
func (r *Recorder) Record(tick uint64, samples []Sample) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace.Frames = append(r.trace.Frames, Frame{
		Tick:    tick,
		Samples: append([]Sample(nil), samples...),
	})
}

func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trace.Frames)
}

// Trace returns a snapshot of what has been recorded so far.
func (r *Recorder) Trace() *Trace {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.trace
	out.Frames = append([]Frame(nil), r.trace.Frames...)
	return &out
}
