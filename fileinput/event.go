package fileinput

// DragMarkerFormat is the payload format the drag-start marker is stored
// under.
const DragMarkerFormat = "text/plain"

// DataTransfer is the payload carried by a drag gesture.
type DataTransfer interface {
	SetData(format, data string)
	Files() []File
}

// DragEvent is a drag lifecycle notification delivered by the host UI.
type DragEvent interface {
	// PreventDefault stops the platform from handling the event itself,
	// e.g. opening a dropped file.
	PreventDefault()
	// CurrentTargetID identifies the element the handler is attached to.
	CurrentTargetID() string
	// DataTransfer returns the gesture payload, or nil when there is none.
	DataTransfer() DataTransfer
}

// Transfer is an in-memory DataTransfer.
type Transfer struct {
	data  map[string]string
	files []File
}

// NewTransfer returns a payload carrying files.
func NewTransfer(files ...File) *Transfer {
	return &Transfer{data: make(map[string]string), files: files}
}

// SetData stores data under format.
func (t *Transfer) SetData(format, data string) {
	if t.data == nil {
		t.data = make(map[string]string)
	}
	t.data[format] = data
}

// Data returns what was stored under format.
func (t *Transfer) Data(format string) string {
	return t.data[format]
}

// Files returns the dropped files.
func (t *Transfer) Files() []File {
	return t.files
}

// Event is a DragEvent built by toolkit adapters and tests.
type Event struct {
	TargetID string
	Transfer *Transfer

	prevented bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// CurrentTargetID returns TargetID.
func (e *Event) CurrentTargetID() string {
	return e.TargetID
}

// DataTransfer returns the payload, or nil if the event carries none.
func (e *Event) DataTransfer() DataTransfer {
	if e.Transfer == nil {
		return nil
	}
	return e.Transfer
}
