package fileinput

// Picker is a file-picker element the host UI renders. Confirming a
// selection must call the function given to SetOnChanged with the chosen
// files.
type Picker interface {
	Show()
	SetOnChanged(func(files []File))
}

// Ref is a mutable handle to the picker a controller works with. The host UI
// binds its picker here; a Ref may also be owned outside the controller and
// passed in through Config.
type Ref struct {
	current Picker
}

// NewRef returns an empty Ref.
func NewRef() *Ref {
	return &Ref{}
}

// Current returns the bound picker, or nil.
func (r *Ref) Current() Picker {
	return r.current
}

// Bind makes p the current picker.
func (r *Ref) Bind(p Picker) {
	r.current = p
}
