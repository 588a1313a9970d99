package fileinput

import (
	"io"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuietController(cfg Config) *Controller {
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	return New(cfg)
}

type fakePicker struct {
	shown     int
	onChanged func([]File)
}

func (p *fakePicker) Show() { p.shown++ }

func (p *fakePicker) SetOnChanged(fn func([]File)) { p.onChanged = fn }

func (p *fakePicker) choose(files ...File) {
	if p.onChanged != nil {
		p.onChanged(files)
	}
}

func TestController_DragSequences(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  DragState
	}{
		{"initial", nil, Idle},
		{"over then leave", []string{"over", "leave"}, Idle},
		{"repeated over then leave", []string{"over", "over", "leave"}, Idle},
		{"leave while idle", []string{"leave", "leave"}, Idle},
		{"over stays hovering", []string{"over", "over", "over"}, Hovering},
		{"start does not hover", []string{"start"}, Idle},
		{"drop from hovering", []string{"start", "over", "drop"}, Idle},
		{"drop from idle", []string{"drop"}, Idle},
		{"no leave keeps hovering", []string{"start", "over"}, Hovering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newQuietController(Config{})
			for _, step := range tt.steps {
				ev := &Event{TargetID: "zone", Transfer: NewTransfer()}
				switch step {
				case "start":
					c.OnFileInputDragStart(ev)
				case "over":
					c.OnFileInputDragOver(ev)
				case "leave":
					c.OnFileInputDragLeave(ev)
				case "drop":
					c.OnFileInputDrop(ev)
				}
				assert.True(t, ev.DefaultPrevented(), step)
			}
			assert.Equal(t, tt.want, c.DragState())
			assert.Equal(t, tt.want == Hovering, c.IsDraggingOver())
		})
	}
}

func TestController_DragStartWritesMarker(t *testing.T) {
	c := newQuietController(Config{})
	transfer := NewTransfer()
	ev := &Event{TargetID: "files", Transfer: transfer}

	c.OnFileInputDragStart(ev)

	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, "files", transfer.Data(DragMarkerFormat))
	assert.False(t, c.IsDraggingOver())
}

func TestController_ScenarioA_PickerChange(t *testing.T) {
	c := newQuietController(Config{})

	c.OnFileInputChange([]File{newFile("x.txt", "x")})

	assert.Equal(t, 1, c.Files().Len())
	assert.Equal(t, []string{"x.txt"}, slices.Collect(c.Files().Keys()))
	assert.False(t, c.IsDraggingOver())
}

func TestController_ScenarioB_DropEndsHover(t *testing.T) {
	c := newQuietController(Config{})
	fileA := newFile("a.txt", "a")

	c.OnFileInputDragOver(&Event{})
	assert.True(t, c.IsDraggingOver())

	c.OnFileInputDrop(&Event{Transfer: NewTransfer(fileA)})

	got, ok := c.Files().Get("a.txt")
	require.True(t, ok)
	assert.Same(t, fileA, got)
	assert.False(t, c.IsDraggingOver())
}

func TestController_ScenarioC_SameNameReplaces(t *testing.T) {
	c := newQuietController(Config{})
	fileA := newFile("x.txt", "first")
	fileB := newFile("x.txt", "second")

	c.Files().Add(fileA)
	c.Files().Add(fileB)

	assert.Equal(t, 1, c.Files().Len())
	got, _ := c.Files().Get("x.txt")
	assert.Same(t, fileB, got)
}

func TestController_ScenarioD_DeleteThenDeleteAgain(t *testing.T) {
	c := newQuietController(Config{})
	fileA := newFile("a.txt", "")

	c.Files().Add(fileA)
	assert.True(t, c.Files().DeleteFile(fileA))
	assert.Equal(t, 0, c.Files().Len())
	assert.False(t, c.Files().DeleteFile(fileA))
}

func TestController_DropKeepsPayloadOrderAndSkipsNil(t *testing.T) {
	c := newQuietController(Config{})
	c.OnFileInputDrop(&Event{Transfer: NewTransfer(
		newFile("c.txt", ""), nil, newFile("a.txt", ""), newFile("b.txt", ""),
	)})

	assert.Equal(t, []string{"c.txt", "a.txt", "b.txt"}, slices.Collect(c.Files().Keys()))
}

func TestController_ToleratesMissingPayload(t *testing.T) {
	c := newQuietController(Config{})

	assert.NotPanics(t, func() {
		c.OnFileInputDragStart(nil)
		c.OnFileInputDragStart(&Event{TargetID: "zone"})
		c.OnFileInputDragOver(nil)
		c.OnFileInputDrop(&Event{})
		c.OnFileInputChange(nil)
		c.OnFileInputChange([]File{nil})
	})
	assert.Equal(t, 0, c.Files().Len())
	assert.False(t, c.IsDraggingOver())

	c.OnFileInputDragOver(nil)
	c.OnFileInputDrop(nil)
	assert.False(t, c.IsDraggingOver())
}

func TestController_CustomIdentity(t *testing.T) {
	c := newQuietController(Config{Identity: func(f File) string {
		return "k-" + f.Name()
	}})

	c.OnFileInputChange([]File{newFile("a.txt", "")})

	assert.True(t, c.Files().Has("k-a.txt"))
	assert.True(t, c.Files().Delete("k-a.txt"))
}

func TestController_ExternalRef(t *testing.T) {
	ref := NewRef()
	c := newQuietController(Config{Ref: ref})
	assert.Same(t, ref, c.FileInputRef())

	other := newQuietController(Config{})
	assert.NotNil(t, other.FileInputRef())
	assert.NotSame(t, ref, other.FileInputRef())
}

func TestController_BindPickerAndBrowse(t *testing.T) {
	c := newQuietController(Config{})
	c.Browse()

	p := &fakePicker{}
	c.BindPicker(p)
	assert.Same(t, p, c.FileInputRef().Current())

	c.Browse()
	assert.Equal(t, 1, p.shown)

	p.choose(newFile("one.txt", ""), newFile("two.txt", ""))
	assert.Equal(t, []string{"one.txt", "two.txt"}, slices.Collect(c.Files().Keys()))
}

func TestController_Listen(t *testing.T) {
	c := newQuietController(Config{})
	var states []State
	cancel := c.Listen(func(s State) {
		states = append(states, s)
	})

	c.OnFileInputDragOver(&Event{})
	c.OnFileInputDragOver(&Event{})
	c.OnFileInputDrop(&Event{Transfer: NewTransfer(newFile("a.txt", ""))})
	c.Files().Clear()
	cancel()
	c.OnFileInputDragOver(&Event{})

	require.Len(t, states, 3)
	assert.True(t, states[0].IsDraggingOver)
	assert.Equal(t, 1, states[1].Files.Len())
	assert.False(t, states[1].IsDraggingOver)
	assert.Equal(t, 0, states[2].Files.Len())
}

func TestController_NotifiesOncePerHandler(t *testing.T) {
	c := newQuietController(Config{})
	var states []State
	c.Listen(func(s State) {
		states = append(states, s)
	})

	c.OnFileInputChange([]File{newFile("a.txt", ""), newFile("b.txt", ""), newFile("c.txt", "")})
	require.Len(t, states, 1)
	assert.Equal(t, 3, states[0].Files.Len())

	c.OnFileInputDragOver(&Event{})
	c.OnFileInputDrop(&Event{Transfer: NewTransfer(newFile("d.txt", ""), newFile("e.txt", ""))})
	require.Len(t, states, 3)
	assert.Equal(t, 5, states[2].Files.Len())
	assert.False(t, states[2].IsDraggingOver)

	// Nothing changed, nothing to report.
	c.OnFileInputChange(nil)
	c.OnFileInputDrop(&Event{})
	assert.Len(t, states, 3)
}

func TestController_LogsAddedKeys(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c := New(Config{Logger: logger})

	c.OnFileInputChange([]File{newFile("x.txt", "")})

	var keys []any
	for _, e := range hook.AllEntries() {
		if k, ok := e.Data["key"]; ok {
			keys = append(keys, k)
		}
	}
	assert.Equal(t, []any{"x.txt"}, keys)
	assert.Equal(t, "file input changed", hook.LastEntry().Message)
}
