package libcam

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

// A Rig is a non-empty list of cameras with one of them active.
type Rig struct {
	cameras []*Camera
	index   int
}

func NewRig(first *Camera) *Rig {
	return &Rig{cameras: []*Camera{first}}
}

func (rig *Rig) Current() *Camera {
	return rig.cameras[rig.index]
}

func (rig *Rig) Index() int {
	return rig.index
}

func (rig *Rig) Len() int {
	return len(rig.cameras)
}

func (rig *Rig) Cameras() []*Camera {
	return rig.cameras
}

// Add appends cam and makes it the current camera.
func (rig *Rig) Add(cam *Camera) {
	rig.cameras = append(rig.cameras, cam)
	rig.index = len(rig.cameras) - 1
}

// AddRandom adds a camera at integer coordinates in [0, 3) looking at the pivot.
func (rig *Rig) AddRandom(rng *rand.Rand, opts Options) *Camera {
	pos := mgl32.Vec3{
		float32(rng.Intn(3)),
		float32(rng.Intn(3)),
		float32(rng.Intn(3)),
	}
	// the origin would look at itself
	if pos == opts.Pivot {
		pos[2] += 3
	}
	cam := NewLookingAt(pos, opts.Pivot, opts)
	rig.Add(cam)
	return cam
}

func (rig *Rig) Next() *Camera {
	rig.index = (rig.index + 1) % len(rig.cameras)
	return rig.Current()
}

// Remove deletes the current camera. The last remaining camera is kept,
// in which case false is returned.
func (rig *Rig) Remove() bool {
	if len(rig.cameras) <= 1 {
		return false
	}
	rig.cameras = slices.Delete(rig.cameras, rig.index, rig.index+1)
	if rig.index >= len(rig.cameras) {
		rig.index = len(rig.cameras) - 1
	}
	return true
}

// Animate advances the queues of all cameras, not only the current one.
func (rig *Rig) Animate(now float64) {
	for _, cam := range rig.cameras {
		cam.Animate(now)
	}
}
