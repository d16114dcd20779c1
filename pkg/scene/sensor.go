package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Sensor is a sensor descriptor attached to a Link. Sensors are meaningful
// only to the nesting format; the flattening format drops them with a
// diagnostic.
type Sensor interface {
	render.Entity
	Name() string
	Type() string
}

// CameraSensor describes a pinhole camera attached to a link.
type CameraSensor struct {
	SensorName    string
	Origin        *pose.Pose
	HorizontalFOV float64
	ImageWidth    int
	ImageHeight   int
	ClipNear      float64
	ClipFar       float64
}

func (c *CameraSensor) Name() string { return c.SensorName }
func (c *CameraSensor) Type() string { return "camera" }

func (c *CameraSensor) ToSDF(ctx *render.Context) (string, error) {
	poseFrag := ""
	if c.Origin != nil {
		poseFrag = c.Origin.SDF()
	}
	camera := element("<camera>", "</camera>",
		fmt.Sprintf("<horizontal_fov>%s</horizontal_fov>", f(c.HorizontalFOV)),
		element("<image>", "</image>",
			fmt.Sprintf("<width>%d</width>", c.ImageWidth),
			fmt.Sprintf("<height>%d</height>", c.ImageHeight),
		),
		element("<clip>", "</clip>",
			fmt.Sprintf("<near>%s</near>", f(c.ClipNear)),
			fmt.Sprintf("<far>%s</far>", f(c.ClipFar)),
		),
	)
	return element(fmt.Sprintf(`<sensor name="%s" type="%s">`, c.SensorName, c.Type()), "</sensor>",
		poseFrag, camera), nil
}

func (c *CameraSensor) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(c, "sensor %q is not supported in URDF", c.SensorName)
	return "", nil
}
