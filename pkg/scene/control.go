package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/render"
)

// Joint type names.
const (
	JointFixed      = "fixed"
	JointContinuous = "continuous"
	JointRevolute   = "revolute"
	JointPrismatic  = "prismatic"
)

// JointInfo carries the kinematic description of a joint: its type, axis,
// and motion limits where applicable.
type JointInfo interface {
	render.Entity
	Type() string
}

// JointLimit bounds the motion of a revolute or prismatic joint.
type JointLimit struct {
	Lower    float64
	Upper    float64
	Effort   float64
	Velocity float64
}

func (l *JointLimit) ToSDF(ctx *render.Context) (string, error) {
	return element("<limit>", "</limit>",
		fmt.Sprintf("<lower>%s</lower>", f(l.Lower)),
		fmt.Sprintf("<upper>%s</upper>", f(l.Upper)),
		fmt.Sprintf("<effort>%s</effort>", f(l.Effort)),
		fmt.Sprintf("<velocity>%s</velocity>", f(l.Velocity)),
	), nil
}

func (l *JointLimit) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<limit lower="%s" upper="%s" effort="%s" velocity="%s"/>`,
		f(l.Lower), f(l.Upper), f(l.Effort), f(l.Velocity)), nil
}

// JointDynamics holds damping and friction coefficients for a joint axis.
type JointDynamics struct {
	Damping  float64
	Friction float64
}

func (d *JointDynamics) ToSDF(ctx *render.Context) (string, error) {
	return element("<dynamics>", "</dynamics>",
		fmt.Sprintf("<damping>%s</damping>", f(d.Damping)),
		fmt.Sprintf("<friction>%s</friction>", f(d.Friction)),
	), nil
}

func (d *JointDynamics) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<dynamics damping="%s" friction="%s"/>`, f(d.Damping), f(d.Friction)), nil
}

// axisInfo is the shared rendering for every joint type that moves about an
// axis.
type axisInfo struct {
	axis     mgl64.Vec3
	limit    *JointLimit
	dynamics *JointDynamics
}

func (a axisInfo) sdf(ctx *render.Context) (string, error) {
	parts := []string{fmt.Sprintf("<xyz>%s</xyz>", vec3(a.axis))}
	if a.limit != nil {
		frag, err := a.limit.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	if a.dynamics != nil {
		frag, err := a.dynamics.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	return element("<axis>", "</axis>", parts...), nil
}

func (a axisInfo) urdf(ctx *render.Context) (string, error) {
	parts := []string{fmt.Sprintf(`<axis xyz="%s"/>`, vec3(a.axis))}
	if a.limit != nil {
		frag, err := a.limit.ToURDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	if a.dynamics != nil {
		frag, err := a.dynamics.ToURDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "\n" + p
	}
	return out, nil
}

// FixedJointInfo describes a joint with no degrees of freedom.
type FixedJointInfo struct{}

func (FixedJointInfo) Type() string                               { return JointFixed }
func (FixedJointInfo) ToSDF(ctx *render.Context) (string, error)  { return "", nil }
func (FixedJointInfo) ToURDF(ctx *render.Context) (string, error) { return "", nil }

// ContinuousJointInfo describes an unbounded rotational joint.
type ContinuousJointInfo struct {
	Axis     mgl64.Vec3
	Dynamics *JointDynamics
}

func (c ContinuousJointInfo) Type() string { return JointContinuous }

func (c ContinuousJointInfo) ToSDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: c.Axis, dynamics: c.Dynamics}.sdf(ctx)
}

func (c ContinuousJointInfo) ToURDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: c.Axis, dynamics: c.Dynamics}.urdf(ctx)
}

// RevoluteJointInfo describes a rotational joint bounded by a limit.
type RevoluteJointInfo struct {
	Axis     mgl64.Vec3
	Limit    *JointLimit
	Dynamics *JointDynamics
}

func (r RevoluteJointInfo) Type() string { return JointRevolute }

func (r RevoluteJointInfo) ToSDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: r.Axis, limit: r.Limit, dynamics: r.Dynamics}.sdf(ctx)
}

func (r RevoluteJointInfo) ToURDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: r.Axis, limit: r.Limit, dynamics: r.Dynamics}.urdf(ctx)
}

// PrismaticJointInfo describes a sliding joint bounded by a limit.
type PrismaticJointInfo struct {
	Axis     mgl64.Vec3
	Limit    *JointLimit
	Dynamics *JointDynamics
}

func (p PrismaticJointInfo) Type() string { return JointPrismatic }

func (p PrismaticJointInfo) ToSDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: p.Axis, limit: p.Limit, dynamics: p.Dynamics}.sdf(ctx)
}

func (p PrismaticJointInfo) ToURDF(ctx *render.Context) (string, error) {
	return axisInfo{axis: p.Axis, limit: p.Limit, dynamics: p.Dynamics}.urdf(ctx)
}

// JointCalibration holds reference positions for joint calibration. Only the
// flattening format can express it.
type JointCalibration struct {
	Rising  float64
	Falling float64
}

func (c *JointCalibration) ToSDF(ctx *render.Context) (string, error) {
	ctx.Warnf(c, "joint calibration is not supported in SDF")
	return "", nil
}

func (c *JointCalibration) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<calibration rising="%s" falling="%s"/>`, f(c.Rising), f(c.Falling)), nil
}

// JointMimic makes a joint track another joint's position. Only the
// flattening format can express it; the referenced joint name is scoped like
// any other flattened name.
type JointMimic struct {
	Joint      string
	Multiplier float64
	Offset     float64
}

func (m *JointMimic) ToSDF(ctx *render.Context) (string, error) {
	ctx.Warnf(m, "joint mimic is not supported in SDF")
	return "", nil
}

func (m *JointMimic) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<mimic joint="%s" multiplier="%s" offset="%s"/>`,
		ctx.ScopedName(m.Joint), f(m.Multiplier), f(m.Offset)), nil
}

// JointControlInfo holds soft operating bounds for a controlled joint. Only
// the flattening format carries it, as a safety controller element.
type JointControlInfo struct {
	Lower     float64
	Upper     float64
	KPosition float64
	KVelocity float64
}

func (c *JointControlInfo) ToSDF(ctx *render.Context) (string, error) {
	ctx.Warnf(c, "joint control limits are not supported in SDF")
	return "", nil
}

func (c *JointControlInfo) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<safety_controller soft_lower_limit="%s" soft_upper_limit="%s" k_position="%s" k_velocity="%s"/>`,
		f(c.Lower), f(c.Upper), f(c.KPosition), f(c.KVelocity)), nil
}
