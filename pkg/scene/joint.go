package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Joint connects two links of its owning Model. Parent and Child are plain
// link names resolved only by name; the renderer never checks that they
// exist (pkg/validate does, on request). Names are required in both formats
// and enforced by the loaders and the validation pass.
type Joint struct {
	Name        string
	Parent      string
	Child       string
	Origin      pose.Pose
	Info        JointInfo
	Calibration *JointCalibration
	Mimic       *JointMimic
	Control     *JointControlInfo
}

func (j *Joint) Type() string {
	return j.Info.Type()
}

// extras collects the optional control-layer children in rendering order.
func (j *Joint) extras() []render.Entity {
	out := make([]render.Entity, 0, 3)
	if j.Calibration != nil {
		out = append(out, j.Calibration)
	}
	if j.Mimic != nil {
		out = append(out, j.Mimic)
	}
	if j.Control != nil {
		out = append(out, j.Control)
	}
	return out
}

func (j *Joint) ToSDF(ctx *render.Context) (string, error) {
	info, err := j.Info.ToSDF(ctx)
	if err != nil {
		return "", err
	}
	extras, err := sdfAll(ctx, j.extras()) // diagnostics only, no fragments
	if err != nil {
		return "", err
	}
	parts := []string{
		fmt.Sprintf("<parent>%s</parent>", j.Parent),
		fmt.Sprintf("<child>%s</child>", j.Child),
		j.Origin.SDF(),
		info,
	}
	parts = append(parts, extras...)
	return element(fmt.Sprintf(`<joint name="%s" type="%s">`, j.Name, j.Type()), "</joint>", parts...), nil
}

func (j *Joint) ToURDF(ctx *render.Context) (string, error) {
	info, err := j.Info.ToURDF(ctx)
	if err != nil {
		return "", err
	}
	extras, err := urdfAll(ctx, j.extras())
	if err != nil {
		return "", err
	}
	origin := pose.Compose(ctx.CurrentPose(), j.Origin)
	parts := []string{
		fmt.Sprintf(`<parent link="%s"/>`, ctx.ScopedName(j.Parent)),
		fmt.Sprintf(`<child link="%s"/>`, ctx.ScopedName(j.Child)),
		origin.URDF(),
		info,
	}
	parts = append(parts, extras...)
	return element(fmt.Sprintf(`<joint name="%s" type="%s">`, ctx.ScopedName(j.Name), j.Type()), "</joint>", parts...), nil
}
