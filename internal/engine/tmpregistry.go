package engine

import (
	"os"
	"sync"
)

// tmpRegistry tracks the temporary files of one operation so a failed or
// cancelled run can sweep any that escaped their own cleanup.
type tmpRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (r *tmpRegistry) register(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *tmpRegistry) deregister(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

// pending returns the number of registered paths.
func (r *tmpRegistry) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// cleanup removes every registered file and empties the registry.
func (r *tmpRegistry) cleanup() {
	r.mu.Lock()
	paths := make([]string, 0, len(r.paths))
	for p := range r.paths {
		paths = append(paths, p)
	}
	r.paths = nil
	r.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}
