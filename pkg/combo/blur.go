package combo

// Scheduler arranges for f to be called once the event currently being
// handled, and any events it synchronously causes, have been processed.
// Browser renderers typically use a zero-delay timer; terminal renderers
// run it at the end of the event loop iteration.
type Scheduler func(f func())

// Immediate is a Scheduler that calls f right away.
func Immediate(f func()) { f() }

// A blur waiting for confirmation.
type pendingBlur struct {
	action Action
}

// Starts the two-phase blur: the blur action is only dispatched when the
// scheduled confirmation runs and nothing inside the widget has taken focus
// in the meantime.
func (w *Widget[T]) beginBlur(a Action) {
	if w.mouseDown {
		// Focus moves to something inside the widget being pressed. The
		// blur is decided when the press ends.
		w.heldBlur = a
		return
	}
	w.scheduleBlur(a)
}

func (w *Widget[T]) scheduleBlur(a Action) {
	p := &pendingBlur{a}
	w.pendingBlur = p
	w.scheduler(func() { w.confirmBlur(p) })
}

// Cancels a pending or held blur because focus came back to the widget.
func (w *Widget[T]) cancelBlur() {
	w.pendingBlur = nil
	w.heldBlur = nil
}

func (w *Widget[T]) confirmBlur(p *pendingBlur) {
	if w.pendingBlur != p {
		return
	}
	w.pendingBlur = nil
	if err := w.dispatch(p.action); err != nil {
		logDispatchError(p.action, err)
	}
}

// Ends a press that started inside the widget. A blur held back during the
// press gets scheduled without committing the highlighted item; a click on an
// item or focus coming back cancels it before it is confirmed.
func (w *Widget[T]) endPress() {
	w.mouseDown = false
	if a := w.heldBlur; a != nil {
		w.heldBlur = nil
		w.scheduleBlur(withoutCommit(a))
	}
}

// PointerUpOutside tells the widget that a mouse button was released outside
// of it, typically from a document-level handler. A blur held back because
// the press started inside the widget is dispatched right away; otherwise an
// open menu is closed as if the focused element lost focus. Neither commits
// the highlighted item.
func (w *Widget[T]) PointerUpOutside() error {
	w.mouseDown = false
	a := w.heldBlur
	w.heldBlur = nil
	w.pendingBlur = nil
	if a == nil {
		if !w.State().IsOpen {
			return nil
		}
		a = w.blurAction(false)
	}
	return w.dispatch(withoutCommit(a))
}

func (w *Widget[T]) blurAction(selectItem bool) Action {
	if w.variant == Select {
		return ToggleButtonBlur{SelectItem: selectItem}
	}
	return InputBlur{SelectItem: selectItem}
}

func withoutCommit(a Action) Action {
	switch a := a.(type) {
	case InputBlur:
		a.SelectItem = false
		return a
	case ToggleButtonBlur:
		a.SelectItem = false
		return a
	}
	return a
}

// BlurPending reports whether a blur is waiting for confirmation.
func (w *Widget[T]) BlurPending() bool { return w.pendingBlur != nil }
