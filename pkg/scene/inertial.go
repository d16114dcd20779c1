package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Inertia holds the six distinct components of a symmetric inertia tensor.
type Inertia struct {
	Ixx, Ixy, Ixz float64
	Iyy, Iyz      float64
	Izz           float64
}

// ZeroInertia returns an all-zero inertia tensor.
func ZeroInertia() Inertia {
	return Inertia{}
}

// DiagonalInertia returns an inertia tensor with the given principal moments
// and zero products of inertia.
func DiagonalInertia(ixx, iyy, izz float64) Inertia {
	return Inertia{Ixx: ixx, Iyy: iyy, Izz: izz}
}

func (i Inertia) ToSDF(ctx *render.Context) (string, error) {
	return element("<inertia>", "</inertia>",
		fmt.Sprintf("<ixx>%s</ixx>", f(i.Ixx)),
		fmt.Sprintf("<ixy>%s</ixy>", f(i.Ixy)),
		fmt.Sprintf("<ixz>%s</ixz>", f(i.Ixz)),
		fmt.Sprintf("<iyy>%s</iyy>", f(i.Iyy)),
		fmt.Sprintf("<iyz>%s</iyz>", f(i.Iyz)),
		fmt.Sprintf("<izz>%s</izz>", f(i.Izz)),
	), nil
}

func (i Inertia) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<inertia ixx="%s" ixy="%s" ixz="%s" iyy="%s" iyz="%s" izz="%s"/>`,
		f(i.Ixx), f(i.Ixy), f(i.Ixz), f(i.Iyy), f(i.Iyz), f(i.Izz)), nil
}

// Inertial is a link's mass, center-of-mass pose, and inertia tensor.
type Inertial struct {
	Mass    float64
	Origin  pose.Pose
	Inertia Inertia
}

// ZeroInertial returns a massless inertial at the identity pose.
func ZeroInertial() *Inertial {
	return &Inertial{}
}

func (i *Inertial) ToSDF(ctx *render.Context) (string, error) {
	inertia, err := i.Inertia.ToSDF(ctx)
	if err != nil {
		return "", err
	}
	return element("<inertial>", "</inertial>",
		fmt.Sprintf("<mass>%s</mass>", f(i.Mass)),
		i.Origin.SDF(),
		inertia,
	), nil
}

func (i *Inertial) ToURDF(ctx *render.Context) (string, error) {
	inertia, err := i.Inertia.ToURDF(ctx)
	if err != nil {
		return "", err
	}
	// Ancestor model poses are baked into the origin when flattening.
	origin := pose.Compose(ctx.CurrentPose(), i.Origin)
	return element("<inertial>", "</inertial>",
		fmt.Sprintf(`<mass value="%s"/>`, f(i.Mass)),
		origin.URDF(),
		inertia,
	), nil
}
