package libui

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	i "github.com/inkyblackness/imgui-go/v4"
)

// Toolbar is the settings window shared by the demos. Demo specific controls
// are added as collapsible sections.
type Toolbar struct {
	Title       string
	Help        []string
	Background  [3]float32
	Wireframe   bool
	FlatShading bool
	ShowNormals bool
	ShowPaths   bool
	sections    []section
	cursorFree  bool
}

type section struct {
	name string
	draw func()
}

func NewToolbar(title string, background mgl32.Vec3) *Toolbar {
	return &Toolbar{
		Title:      title,
		Background: background,
		ShowPaths:  true,
	}
}

func (tb *Toolbar) AddSection(name string, draw func()) {
	tb.sections = append(tb.sections, section{name: name, draw: draw})
}

func (tb *Toolbar) BackgroundColor() mgl32.Vec3 {
	return tb.Background
}

// CursorFree reports whether the cursor is released to interact with the toolbar.
func (tb *Toolbar) CursorFree() bool {
	return tb.cursorFree
}

// SetCursorFree switches between mouse look and mouse interaction with the toolbar.
func (tb *Toolbar) SetCursorFree(win *glfw.Window, free bool) {
	tb.cursorFree = free
	if free {
		win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		i.CurrentIO().SetConfigFlags(i.ConfigFlagsNone)
	} else {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		i.CurrentIO().SetConfigFlags(i.ConfigFlagsNoMouse)
	}
}

// Draw builds the toolbar for this frame. Call between NewFrame and ImGui.Draw.
func (tb *Toolbar) Draw(frameTime float32) {
	i.SetNextWindowPosV(i.Vec2{X: 10, Y: 10}, i.ConditionFirstUseEver, i.Vec2{})
	i.BeginV(tb.Title, nil, i.WindowFlagsAlwaysAutoResize)
	defer i.End()

	i.Text("Press Left Alt to release the cursor.")
	if frameTime > 0 {
		i.Text(fmt.Sprintf("%.2f ms (%.0f fps)", frameTime*1000, 1/frameTime))
	}
	i.ColorEdit3("Background", &tb.Background)
	i.Checkbox("Wireframe", &tb.Wireframe)
	i.SameLine()
	i.Checkbox("Show Paths", &tb.ShowPaths)
	i.Checkbox("Flat Shading", &tb.FlatShading)
	i.SameLine()
	i.Checkbox("Show Normals", &tb.ShowNormals)

	for n, s := range tb.sections {
		if i.CollapsingHeaderV(s.name, i.TreeNodeFlagsDefaultOpen) {
			i.PushID(fmt.Sprintf("section%d", n))
			i.Indent()
			s.draw()
			i.Unindent()
			i.PopID()
		}
	}

	if len(tb.Help) > 0 && i.CollapsingHeader("Keys") {
		for _, line := range tb.Help {
			i.Text(line)
		}
	}
}
