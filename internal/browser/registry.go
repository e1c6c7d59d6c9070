package browser

import (
	"errors"
	"sync"
	"web-ui-harness/internal/entity"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// handleRegistry maps the opaque ids handed to callers onto playwright
// handles. Every handle is filed under the page that produced it so a
// navigation or a closed tab can drop that page's handles in one go.
type handleRegistry struct {
	mu      sync.Mutex
	handles map[entity.ElementID]registeredHandle
}

type registeredHandle struct {
	handle playwright.ElementHandle
	page   playwright.Page
}

func newHandleRegistry() *handleRegistry {
	return &handleRegistry{handles: make(map[entity.ElementID]registeredHandle)}
}

func (r *handleRegistry) add(page playwright.Page, handles []playwright.ElementHandle) []entity.ElementID {
	ids := make([]entity.ElementID, len(handles))

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, handle := range handles {
		ids[i] = entity.ElementID(uuid.NewString())
		r.handles[ids[i]] = registeredHandle{handle: handle, page: page}
	}

	return ids
}

func (r *handleRegistry) get(id entity.ElementID) (playwright.ElementHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.handles[id]

	return entry.handle, ok
}

func (r *handleRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handles)
}

// release drops ids and disposes their handles. Unknown ids are ignored.
func (r *handleRegistry) release(ids []entity.ElementID) error {
	r.mu.Lock()
	dropped := make([]playwright.ElementHandle, 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.handles[id]; ok {
			dropped = append(dropped, entry.handle)
			delete(r.handles, id)
		}
	}
	r.mu.Unlock()

	return dispose(dropped)
}

// releasePage drops every handle produced by page.
func (r *handleRegistry) releasePage(page playwright.Page) error {
	r.mu.Lock()
	var dropped []playwright.ElementHandle
	for id, entry := range r.handles {
		if entry.page == page {
			dropped = append(dropped, entry.handle)
			delete(r.handles, id)
		}
	}
	r.mu.Unlock()

	return dispose(dropped)
}

// reset forgets every handle without disposing it. It is used once the
// browser context that owned the handles is gone.
func (r *handleRegistry) reset() {
	r.mu.Lock()
	r.handles = make(map[entity.ElementID]registeredHandle)
	r.mu.Unlock()
}

func dispose(handles []playwright.ElementHandle) error {
	var errs []error

	for _, handle := range handles {
		if err := handle.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
