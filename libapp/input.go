package libapp

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is polled once per frame, edges are detected against the previous frame.
type Input struct {
	curr   inputState
	prev   inputState
	scroll mgl32.Vec2
}

type inputState struct {
	time         float64
	cursorPos    mgl32.Vec2
	scroll       mgl32.Vec2
	keys         []bool
	mousebuttons []bool
}

func NewInput(ctx *glfw.Window) *Input {
	i := &Input{
		curr: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
		prev: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
	}

	i.Update(ctx)
	i.prev.cursorPos = i.curr.cursorPos
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	copy(i.prev.mousebuttons, i.curr.mousebuttons)

	return i
}

// AddScroll accumulates wheel input until the next Update. Meant to be
// called from a scroll callback.
func (i *Input) AddScroll(dx, dy float64) {
	i.scroll = i.scroll.Add(mgl32.Vec2{float32(dx), float32(dy)})
}

func (i *Input) CursorDelta() mgl32.Vec2 {
	return i.curr.cursorPos.Sub(i.prev.cursorPos)
}

func (i *Input) ScrollDelta() mgl32.Vec2 {
	return i.curr.scroll
}

// Time of the last Update in seconds since glfw.Init.
func (i *Input) Time() float64 {
	return i.curr.time
}

func (i *Input) TimeDelta() float32 {
	return float32(i.curr.time - i.prev.time)
}

func (i *Input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *Input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *Input) IsMouseDown(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button]
}

func (i *Input) IsMouseTap(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button] && !i.prev.mousebuttons[button]
}

func (i *Input) Update(ctx *glfw.Window) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := ctx.GetCursorPos()

	for key := int(glfw.KeySpace); key <= int(glfw.KeyLast); key++ {
		keys[key] = ctx.GetKey(glfw.Key(key)) != glfw.Release
	}

	for button := 0; button <= int(glfw.MouseButtonLast); button++ {
		mousebuttons[button] = ctx.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
	}

	i.curr = inputState{
		time:         glfw.GetTime(),
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		scroll:       i.scroll,
		keys:         keys,
		mousebuttons: mousebuttons,
	}
	i.scroll = mgl32.Vec2{}
}
