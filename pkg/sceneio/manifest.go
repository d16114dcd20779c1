package sceneio

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// ManifestFileName is the conventional name for a scene manifest.
const ManifestFileName = "scenesmith.toml"

// defaultManifestColor is used for manifest links without an explicit color.
var defaultManifestColor = scene.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

// manifest is the TOML schema for hand-authored simple scenes. Every link is
// a single-geometry body built from one shape; anything richer needs the
// JSON format.
type manifest struct {
	Name     string            `toml:"name"`
	Static   bool              `toml:"static"`
	Pose     []float64         `toml:"pose"`
	Links    []manifestLink    `toml:"link"`
	Joints   []manifestJoint   `toml:"joint"`
	Includes []manifestInclude `toml:"include"`
}

type manifestLink struct {
	Name  string    `toml:"name"`
	Shape string    `toml:"shape"`
	Dims  []float64 `toml:"dims"`
	URI   string    `toml:"uri"`
	Scale []float64 `toml:"scale"`
	Pose  []float64 `toml:"pose"`
	Color []float64 `toml:"color"`
}

type manifestJoint struct {
	Name     string    `toml:"name"`
	Type     string    `toml:"type"`
	Parent   string    `toml:"parent"`
	Child    string    `toml:"child"`
	Pose     []float64 `toml:"pose"`
	Axis     []float64 `toml:"axis"`
	Lower    float64   `toml:"lower"`
	Upper    float64   `toml:"upper"`
	Effort   float64   `toml:"effort"`
	Velocity float64   `toml:"velocity"`
}

type manifestInclude struct {
	Name         string    `toml:"name"`
	URI          string    `toml:"uri"`
	Pose         []float64 `toml:"pose"`
	Static       bool      `toml:"static"`
	Scale        []float64 `toml:"scale"`
	UniformScale *float64  `toml:"uniform_scale"`
}

// LoadManifest reads a TOML scene manifest and builds the model tree.
func LoadManifest(path string) (*scene.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	return ParseManifest(data)
}

// ParseManifest builds a model tree from TOML manifest bytes.
func ParseManifest(data []byte) (*scene.Model, error) {
	var mf manifest
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}
	if mf.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest has no scene name")
	}

	origin, err := poseFromDoc(mf.Pose)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "scene %q", mf.Name)
	}
	m := &scene.Model{Name: mf.Name, Origin: origin, Static: mf.Static}

	for _, ml := range mf.Links {
		l, err := manifestLinkToScene(ml)
		if err != nil {
			return nil, err
		}
		m.Links = append(m.Links, l)
	}
	for _, mj := range mf.Joints {
		j, err := manifestJointToScene(mj)
		if err != nil {
			return nil, err
		}
		m.Joints = append(m.Joints, j)
	}
	for _, mi := range mf.Includes {
		inc, err := includeFromDoc(IncludeDoc{
			Name:         mi.Name,
			URI:          mi.URI,
			Pose:         mi.Pose,
			Static:       mi.Static,
			Scale:        mi.Scale,
			UniformScale: mi.UniformScale,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "include %q", mi.Name)
		}
		m.Includes = append(m.Includes, inc)
	}

	return m, nil
}

func manifestLinkToScene(ml manifestLink) (*scene.Link, error) {
	if ml.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "link has no name")
	}
	shape, err := shapeFromDoc(ShapeDoc{Type: ml.Shape, Dims: ml.Dims, URI: ml.URI, Scale: ml.Scale})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "link %q", ml.Name)
	}

	origin, err := poseFromDoc(ml.Pose)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "link %q", ml.Name)
	}
	p := originOrIdentity(origin)

	color := defaultManifestColor
	if len(ml.Color) > 0 {
		c, err := colorFromDoc(ml.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "link %q", ml.Name)
		}
		color = c
	}

	return scene.FromSimpleShape(ml.Name, p, shape, color), nil
}

func manifestJointToScene(mj manifestJoint) (*scene.Joint, error) {
	doc := JointDoc{
		Name:   mj.Name,
		Type:   mj.Type,
		Parent: mj.Parent,
		Child:  mj.Child,
		Pose:   mj.Pose,
		Axis:   mj.Axis,
	}
	// Limits are flattened in the manifest form; lift them only when bounds
	// were actually given.
	if mj.Lower != 0 || mj.Upper != 0 || mj.Effort != 0 || mj.Velocity != 0 {
		doc.Limit = &LimitDoc{Lower: mj.Lower, Upper: mj.Upper, Effort: mj.Effort, Velocity: mj.Velocity}
	}
	j, err := jointFromDoc(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "joint %q", mj.Name)
	}
	return j, nil
}

func originOrIdentity(p *pose.Pose) pose.Pose {
	if p == nil {
		return pose.Identity()
	}
	return *p
}
