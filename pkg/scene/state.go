package scene

import (
	"fmt"
	"strconv"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// State snapshot entities capture a world's configuration at an instant.
// They exist only in the nesting format; rendering any of them to the
// flattening format yields an empty fragment and a diagnostic.

// JointAxisState is the value of one axis of a joint.
type JointAxisState struct {
	Axis  int
	Value float64
}

func (s *JointAxisState) ToSDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<angle axis="%s">%s</angle>`, strconv.Itoa(s.Axis), f(s.Value)), nil
}

func (s *JointAxisState) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "joint axis state is not supported in URDF")
	return "", nil
}

// JointState is the per-axis configuration of one named joint.
type JointState struct {
	Name       string
	AxisStates []*JointAxisState
}

func (s *JointState) ToSDF(ctx *render.Context) (string, error) {
	axes, err := sdfAll(ctx, s.AxisStates)
	if err != nil {
		return "", err
	}
	return element(fmt.Sprintf(`<joint name="%s">`, s.Name), "</joint>", axes...), nil
}

func (s *JointState) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "joint state is not supported in URDF")
	return "", nil
}

// LinkState is the recorded pose of one named link.
type LinkState struct {
	Name   string
	Origin *pose.Pose
}

func (s *LinkState) ToSDF(ctx *render.Context) (string, error) {
	poseFrag := ""
	if s.Origin != nil {
		poseFrag = s.Origin.SDF()
	}
	return element(fmt.Sprintf(`<link name="%s">`, s.Name), "</link>", poseFrag), nil
}

func (s *LinkState) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "link state is not supported in URDF")
	return "", nil
}

// ModelState groups the joint and link states of one named model.
type ModelState struct {
	Name        string
	Parent      string
	Origin      *pose.Pose
	JointStates []*JointState
	LinkStates  []*LinkState
}

func (s *ModelState) ToSDF(ctx *render.Context) (string, error) {
	joints, err := sdfAll(ctx, s.JointStates)
	if err != nil {
		return "", err
	}
	links, err := sdfAll(ctx, s.LinkStates)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, 1+len(joints)+len(links))
	if s.Origin != nil {
		parts = append(parts, s.Origin.SDF())
	}
	parts = append(parts, joints...)
	parts = append(parts, links...)
	return element(fmt.Sprintf(`<model name="%s">`, s.Name), "</model>", parts...), nil
}

func (s *ModelState) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "model state is not supported in URDF")
	return "", nil
}

// WorldState snapshots every model of a named world.
type WorldState struct {
	Name        string
	ModelStates []*ModelState
}

func (s *WorldState) ToSDF(ctx *render.Context) (string, error) {
	models, err := sdfAll(ctx, s.ModelStates)
	if err != nil {
		return "", err
	}
	return element(fmt.Sprintf(`<state world_name="%s">`, s.Name), "</state>", models...), nil
}

func (s *WorldState) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "world state is not supported in URDF")
	return "", nil
}
