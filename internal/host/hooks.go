package host

import (
	"sort"
	"sync"
)

// Event names fired by the host platform's media pipeline. The host's
// dispatcher invokes whatever handler is registered under each name; the
// bridge only fills the table.
const (
	EventItemMetadataGenerated = "media.item.metadata_generated"
	EventURLResolved           = "media.attachment.url"
	EventImageSourceResolved   = "media.attachment.image_source"
	EventSourceSetComputed     = "media.attachment.source_set"
)

// Registry maps pipeline event names to handlers. Handler signatures are
// event-specific, so they are stored untyped; the host's dispatch mechanism
// knows which shape each event carries.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]any
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]any)}
}

// Register installs handler under the given event name, replacing any
// previous registration.
func (r *Registry) Register(event string, handler any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[event] = handler
}

// Handler returns the handler registered under event, if any.
func (r *Registry) Handler(event string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[event]
	return h, ok
}

// Names returns the registered event names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
