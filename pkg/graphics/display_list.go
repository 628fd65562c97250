package graphics

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type opSave struct{}

func (opSave) execute(c Canvas) { c.Save() }

type opRestore struct{}

func (opRestore) execute(c Canvas) { c.Restore() }

type opTranslate struct{ dx, dy float64 }

func (o opTranslate) execute(c Canvas) { c.Translate(o.dx, o.dy) }

type opClipRect struct{ rect Rect }

func (o opClipRect) execute(c Canvas) { c.ClipRect(o.rect) }

type opFillRect struct {
	rect  Rect
	color Color
}

func (o opFillRect) execute(c Canvas) { c.FillRect(o.rect, o.color) }

type opStrokeLine struct {
	from, to Offset
	color    Color
	width    float64
}

func (o opStrokeLine) execute(c Canvas) { c.StrokeLine(o.from, o.to, o.color, o.width) }

type opDrawText struct {
	text   string
	origin Offset
	color  Color
}

func (o opDrawText) execute(c Canvas) { c.DrawText(o.text, o.origin, o.color) }

type opDrawImage struct {
	buf *ImageBuf
	dst Rect
}

func (o opDrawImage) execute(c Canvas) { c.DrawImage(o.buf, o.dst) }

// recordingCanvas appends every draw call to the recorder.
type recordingCanvas struct {
	recorder *PictureRecorder
}

func (r *recordingCanvas) Save()                  { r.recorder.append(opSave{}) }
func (r *recordingCanvas) Restore()               { r.recorder.append(opRestore{}) }
func (r *recordingCanvas) Translate(dx, dy float64) {
	r.recorder.append(opTranslate{dx: dx, dy: dy})
}
func (r *recordingCanvas) ClipRect(rect Rect) { r.recorder.append(opClipRect{rect: rect}) }
func (r *recordingCanvas) FillRect(rect Rect, color Color) {
	r.recorder.append(opFillRect{rect: rect, color: color})
}
func (r *recordingCanvas) StrokeLine(from, to Offset, color Color, width float64) {
	r.recorder.append(opStrokeLine{from: from, to: to, color: color, width: width})
}
func (r *recordingCanvas) DrawText(text string, origin Offset, color Color) {
	r.recorder.append(opDrawText{text: text, origin: origin, color: color})
}
func (r *recordingCanvas) DrawImage(buf *ImageBuf, dst Rect) {
	r.recorder.append(opDrawImage{buf: buf, dst: dst})
}
