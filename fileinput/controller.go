package fileinput

import (
	"github.com/sirupsen/logrus"
)

// Config configures a Controller. The zero value is ready to use.
type Config struct {
	// Identity derives deduplication keys. Defaults to NameIdentity.
	Identity IdentityFunc
	// Ref is an externally owned picker handle used instead of a new one.
	Ref *Ref
	// Logger receives debug traces. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// State is what listeners see after a change.
type State struct {
	Files          *Snapshot
	IsDraggingOver bool
}

// Controller turns picker and drag-and-drop notifications into changes of a
// file Collection and of the drop target's hover state. One controller backs
// one file input.
type Controller struct {
	files *Collection
	drag  dragMachine
	ref   *Ref
	log   logrus.FieldLogger

	listeners map[int]func(State)
	nextID    int

	batching bool // hold notifications until the running handler returns
	pending  bool
}

// New returns a controller with an empty collection in the Idle state.
func New(cfg Config) *Controller {
	c := &Controller{
		files:     NewCollection(cfg.Identity),
		ref:       cfg.Ref,
		log:       cfg.Logger,
		listeners: make(map[int]func(State)),
	}
	if c.ref == nil {
		c.ref = NewRef()
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	c.files.Subscribe(func(*Snapshot) {
		c.notify()
	})
	return c
}

// Files returns the collection facade.
func (c *Controller) Files() *Collection {
	return c.files
}

// IsDraggingOver reports whether a drag payload is over the drop target.
func (c *Controller) IsDraggingOver() bool {
	return c.drag.state == Hovering
}

// DragState returns the drop target's hover state.
func (c *Controller) DragState() DragState {
	return c.drag.state
}

// FileInputRef returns the handle the host binds its picker to.
func (c *Controller) FileInputRef() *Ref {
	return c.ref
}

// State returns the current files and hover state.
func (c *Controller) State() State {
	return State{Files: c.files.Snapshot(), IsDraggingOver: c.IsDraggingOver()}
}

// BindPicker binds p to the controller's ref and feeds its selections to
// OnFileInputChange.
func (c *Controller) BindPicker(p Picker) {
	c.ref.Bind(p)
	if p != nil {
		p.SetOnChanged(c.OnFileInputChange)
	}
}

// Browse shows the bound picker. It does nothing when no picker is bound.
func (c *Controller) Browse() {
	p := c.ref.Current()
	if p == nil {
		c.log.Debug("browse requested with no picker bound")
		return
	}
	p.Show()
}

// Listen registers fn to run after the files or the hover state change. The
// returned func removes it.
func (c *Controller) Listen(fn func(State)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// OnFileInputChange adds the picker's selection in the order given.
// Listeners are notified once for the whole selection.
func (c *Controller) OnFileInputChange(files []File) {
	c.batch(func() {
		added := c.addAll(files)
		c.log.WithField("count", added).Debug("file input changed")
	})
}

// OnFileInputDragStart writes the target marker into the payload. The marker
// has to be present from the start of the gesture for some platforms to
// accept the drop.
func (c *Controller) OnFileInputDragStart(ev DragEvent) {
	if ev == nil {
		return
	}
	ev.PreventDefault()
	if dt := ev.DataTransfer(); dt != nil {
		dt.SetData(DragMarkerFormat, ev.CurrentTargetID())
	}
}

// OnFileInputDragOver marks the target as hovered.
func (c *Controller) OnFileInputDragOver(ev DragEvent) {
	if ev != nil {
		ev.PreventDefault()
	}
	c.transition(c.drag.over())
}

// OnFileInputDragLeave marks the target as idle.
func (c *Controller) OnFileInputDragLeave(ev DragEvent) {
	if ev != nil {
		ev.PreventDefault()
	}
	c.transition(c.drag.leave())
}

// OnFileInputDrop adds the dropped files in payload order and ends the
// gesture. Listeners are notified once, with the gesture already ended.
func (c *Controller) OnFileInputDrop(ev DragEvent) {
	c.batch(func() {
		added := 0
		if ev != nil {
			ev.PreventDefault()
			if dt := ev.DataTransfer(); dt != nil {
				added = c.addAll(dt.Files())
			}
		}
		c.log.WithField("count", added).Debug("files dropped")
		c.transition(c.drag.drop())
	})
}

func (c *Controller) addAll(files []File) int {
	added := 0
	for _, f := range files {
		if f == nil {
			continue
		}
		c.files.Add(f)
		c.log.WithField("key", c.files.Key(f)).Debug("file added")
		added++
	}
	return added
}

func (c *Controller) transition(changed bool) {
	if !changed {
		return
	}
	c.log.WithField("state", c.drag.state).Debug("drag state changed")
	c.notify()
}

func (c *Controller) batch(fn func()) {
	c.batching = true
	fn()
	c.batching = false
	if c.pending {
		c.pending = false
		c.notify()
	}
}

func (c *Controller) notify() {
	if c.batching {
		c.pending = true
		return
	}
	st := c.State()
	for _, id := range sortedIDs(c.listeners) {
		if fn, ok := c.listeners[id]; ok {
			fn(st)
		}
	}
}
