package sceneio

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Material kinds used as the union tag in MaterialDoc.
const (
	MaterialColor   = "color"
	MaterialTexture = "texture"
	MaterialPhong   = "phong"
)

// Sensor kinds used as the union tag in SensorDoc.
const (
	SensorCamera = "camera"
)

// =============================================================================
// Documents - Scene Tree Serialization
// =============================================================================

// ModelDoc is the canonical serialization form of a model tree. It is the
// top-level document of a scene file.
//
// Poses are six-element arrays: x, y, z, roll, pitch, yaw. An absent pose
// means the identity transform; the converters preserve absence so that
// import → export round-trips byte-identically.
type ModelDoc struct {
	Name     string       `json:"name" bson:"name"`
	Pose     []float64    `json:"pose,omitempty" bson:"pose,omitempty"`
	Parent   string       `json:"parent,omitempty" bson:"parent,omitempty"`
	Static   bool         `json:"static,omitempty" bson:"static,omitempty"`
	Links    []LinkDoc    `json:"links,omitempty" bson:"links,omitempty"`
	Joints   []JointDoc   `json:"joints,omitempty" bson:"joints,omitempty"`
	Models   []ModelDoc   `json:"models,omitempty" bson:"models,omitempty"`
	Includes []IncludeDoc `json:"includes,omitempty" bson:"includes,omitempty"`
}

// LinkDoc serializes a rigid body and its owned geometries.
type LinkDoc struct {
	Name       string        `json:"name" bson:"name"`
	Parent     string        `json:"parent,omitempty" bson:"parent,omitempty"`
	Pose       []float64     `json:"pose,omitempty" bson:"pose,omitempty"`
	Inertial   *InertialDoc  `json:"inertial,omitempty" bson:"inertial,omitempty"`
	Collisions []GeometryDoc `json:"collisions,omitempty" bson:"collisions,omitempty"`
	Visuals    []GeometryDoc `json:"visuals,omitempty" bson:"visuals,omitempty"`
	Sensors    []SensorDoc   `json:"sensors,omitempty" bson:"sensors,omitempty"`
}

// InertialDoc serializes mass properties. Inertia is the six distinct tensor
// components in ixx, ixy, ixz, iyy, iyz, izz order.
type InertialDoc struct {
	Mass    float64   `json:"mass" bson:"mass"`
	Pose    []float64 `json:"pose,omitempty" bson:"pose,omitempty"`
	Inertia []float64 `json:"inertia,omitempty" bson:"inertia,omitempty"`
}

// GeometryDoc serializes one collision or visual. Material applies to
// visuals only; Surface applies to collisions only.
type GeometryDoc struct {
	Name     string       `json:"name" bson:"name"`
	Pose     []float64    `json:"pose,omitempty" bson:"pose,omitempty"`
	Shape    ShapeDoc     `json:"shape" bson:"shape"`
	Material *MaterialDoc `json:"material,omitempty" bson:"material,omitempty"`
	Surface  bool         `json:"surface,omitempty" bson:"surface,omitempty"`
}

// ShapeDoc is the tagged union for geometry shapes. Type is one of the
// scene shape names; Dims carries the per-type dimension list, while mesh
// shapes use URI and Scale instead.
type ShapeDoc struct {
	Type  string    `json:"type" bson:"type"`
	Dims  []float64 `json:"dims,omitempty" bson:"dims,omitempty"`
	URI   string    `json:"uri,omitempty" bson:"uri,omitempty"`
	Scale []float64 `json:"scale,omitempty" bson:"scale,omitempty"`
}

// MaterialDoc is the tagged union for visual materials.
type MaterialDoc struct {
	Type     string    `json:"type" bson:"type"`
	RGBA     []float64 `json:"rgba,omitempty" bson:"rgba,omitempty"`
	URI      string    `json:"uri,omitempty" bson:"uri,omitempty"`
	Ambient  []float64 `json:"ambient,omitempty" bson:"ambient,omitempty"`
	Diffuse  []float64 `json:"diffuse,omitempty" bson:"diffuse,omitempty"`
	Specular []float64 `json:"specular,omitempty" bson:"specular,omitempty"`
	Emissive []float64 `json:"emissive,omitempty" bson:"emissive,omitempty"`
}

// SensorDoc serializes a link-mounted sensor. Only cameras are modeled.
type SensorDoc struct {
	Name          string    `json:"name" bson:"name"`
	Type          string    `json:"type" bson:"type"`
	Pose          []float64 `json:"pose,omitempty" bson:"pose,omitempty"`
	HorizontalFOV float64   `json:"horizontal_fov,omitempty" bson:"horizontal_fov,omitempty"`
	Width         int       `json:"width,omitempty" bson:"width,omitempty"`
	Height        int       `json:"height,omitempty" bson:"height,omitempty"`
	ClipNear      float64   `json:"clip_near,omitempty" bson:"clip_near,omitempty"`
	ClipFar       float64   `json:"clip_far,omitempty" bson:"clip_far,omitempty"`
}

// JointDoc serializes a joint. Type is one of the joint kind names; Axis is
// required for every kind except fixed.
type JointDoc struct {
	Name        string          `json:"name" bson:"name"`
	Type        string          `json:"type" bson:"type"`
	Parent      string          `json:"parent" bson:"parent"`
	Child       string          `json:"child" bson:"child"`
	Pose        []float64       `json:"pose,omitempty" bson:"pose,omitempty"`
	Axis        []float64       `json:"axis,omitempty" bson:"axis,omitempty"`
	Limit       *LimitDoc       `json:"limit,omitempty" bson:"limit,omitempty"`
	Dynamics    *DynamicsDoc    `json:"dynamics,omitempty" bson:"dynamics,omitempty"`
	Calibration *CalibrationDoc `json:"calibration,omitempty" bson:"calibration,omitempty"`
	Mimic       *MimicDoc       `json:"mimic,omitempty" bson:"mimic,omitempty"`
	Safety      *SafetyDoc      `json:"safety,omitempty" bson:"safety,omitempty"`
}

// LimitDoc serializes joint motion bounds.
type LimitDoc struct {
	Lower    float64 `json:"lower" bson:"lower"`
	Upper    float64 `json:"upper" bson:"upper"`
	Effort   float64 `json:"effort,omitempty" bson:"effort,omitempty"`
	Velocity float64 `json:"velocity,omitempty" bson:"velocity,omitempty"`
}

// DynamicsDoc serializes joint damping and friction.
type DynamicsDoc struct {
	Damping  float64 `json:"damping,omitempty" bson:"damping,omitempty"`
	Friction float64 `json:"friction,omitempty" bson:"friction,omitempty"`
}

// CalibrationDoc serializes joint calibration references.
type CalibrationDoc struct {
	Rising  float64 `json:"rising,omitempty" bson:"rising,omitempty"`
	Falling float64 `json:"falling,omitempty" bson:"falling,omitempty"`
}

// MimicDoc serializes a joint-tracking relation.
type MimicDoc struct {
	Joint      string  `json:"joint" bson:"joint"`
	Multiplier float64 `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	Offset     float64 `json:"offset,omitempty" bson:"offset,omitempty"`
}

// SafetyDoc serializes soft operating bounds for a controlled joint.
type SafetyDoc struct {
	Lower     float64 `json:"lower,omitempty" bson:"lower,omitempty"`
	Upper     float64 `json:"upper,omitempty" bson:"upper,omitempty"`
	KPosition float64 `json:"k_position,omitempty" bson:"k_position,omitempty"`
	KVelocity float64 `json:"k_velocity,omitempty" bson:"k_velocity,omitempty"`
}

// IncludeDoc serializes an external sub-model reference. Scale and
// UniformScale are mutually exclusive, matching the in-memory type.
type IncludeDoc struct {
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	URI          string    `json:"uri" bson:"uri"`
	Pose         []float64 `json:"pose,omitempty" bson:"pose,omitempty"`
	Parent       string    `json:"parent,omitempty" bson:"parent,omitempty"`
	Static       bool      `json:"static,omitempty" bson:"static,omitempty"`
	Scale        []float64 `json:"scale,omitempty" bson:"scale,omitempty"`
	UniformScale *float64  `json:"uniform_scale,omitempty" bson:"uniform_scale,omitempty"`
}

// =============================================================================
// Document → Scene Conversion
// =============================================================================

// ToModel converts a document tree to the in-memory scene tree. It rejects
// unnamed models, links, and joints, malformed poses, and unknown union
// tags; all failures carry pkg/errors codes.
func ToModel(doc ModelDoc) (*scene.Model, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "model has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "model %q", doc.Name)
	}

	m := &scene.Model{
		Name:   doc.Name,
		Origin: origin,
		Parent: doc.Parent,
		Static: doc.Static,
	}

	for _, ld := range doc.Links {
		l, err := linkFromDoc(ld)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "model %q", doc.Name)
		}
		m.Links = append(m.Links, l)
	}
	for _, jd := range doc.Joints {
		j, err := jointFromDoc(jd)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "model %q", doc.Name)
		}
		m.Joints = append(m.Joints, j)
	}
	for _, sd := range doc.Models {
		sub, err := ToModel(sd)
		if err != nil {
			return nil, err
		}
		m.Models = append(m.Models, sub)
	}
	for _, id := range doc.Includes {
		inc, err := includeFromDoc(id)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "model %q", doc.Name)
		}
		m.Includes = append(m.Includes, inc)
	}

	return m, nil
}

func linkFromDoc(doc LinkDoc) (*scene.Link, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "link has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link %q", doc.Name)
	}

	l := &scene.Link{Name: doc.Name, Parent: doc.Parent, Origin: origin}

	if doc.Inertial != nil {
		inertial, err := inertialFromDoc(*doc.Inertial)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link %q", doc.Name)
		}
		l.Inertial = inertial
	}
	for _, gd := range doc.Collisions {
		c, err := collisionFromDoc(gd)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link %q", doc.Name)
		}
		l.Collisions = append(l.Collisions, c)
	}
	for _, gd := range doc.Visuals {
		v, err := visualFromDoc(gd)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link %q", doc.Name)
		}
		l.Visuals = append(l.Visuals, v)
	}
	for _, sd := range doc.Sensors {
		s, err := sensorFromDoc(sd)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link %q", doc.Name)
		}
		l.Sensors = append(l.Sensors, s)
	}

	return l, nil
}

func inertialFromDoc(doc InertialDoc) (*scene.Inertial, error) {
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, err
	}
	inertial := &scene.Inertial{Mass: doc.Mass}
	if origin != nil {
		inertial.Origin = *origin
	}
	switch len(doc.Inertia) {
	case 0:
	case 6:
		inertial.Inertia = scene.Inertia{
			Ixx: doc.Inertia[0], Ixy: doc.Inertia[1], Ixz: doc.Inertia[2],
			Iyy: doc.Inertia[3], Iyz: doc.Inertia[4],
			Izz: doc.Inertia[5],
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "inertia needs 6 components, got %d", len(doc.Inertia))
	}
	return inertial, nil
}

func collisionFromDoc(doc GeometryDoc) (*scene.Collision, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "collision has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, err
	}
	shape, err := shapeFromDoc(doc.Shape)
	if err != nil {
		return nil, err
	}
	c := &scene.Collision{Name: doc.Name, Origin: origin, Shape: shape}
	if doc.Surface {
		c.Surface = &scene.SurfaceInfo{
			Contact:  &scene.SurfaceContact{},
			Friction: &scene.SurfaceFriction{},
		}
	}
	return c, nil
}

func visualFromDoc(doc GeometryDoc) (*scene.Visual, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "visual has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, err
	}
	shape, err := shapeFromDoc(doc.Shape)
	if err != nil {
		return nil, err
	}
	v := &scene.Visual{Name: doc.Name, Origin: origin, Shape: shape}
	if doc.Material != nil {
		material, err := materialFromDoc(*doc.Material)
		if err != nil {
			return nil, err
		}
		v.Material = material
	}
	return v, nil
}

func shapeFromDoc(doc ShapeDoc) (scene.Shape, error) {
	if doc.Type == scene.ShapeMesh {
		if doc.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidShape, "mesh has no uri")
		}
		m := scene.NewMesh(doc.URI)
		switch len(doc.Scale) {
		case 0:
		case 3:
			m.Scale = mgl64.Vec3{doc.Scale[0], doc.Scale[1], doc.Scale[2]}
		default:
			return nil, errors.New(errors.ErrCodeInvalidShape, "mesh scale needs 3 components, got %d", len(doc.Scale))
		}
		return m, nil
	}
	return scene.ShapeFromType(doc.Type, doc.Dims...)
}

func materialFromDoc(doc MaterialDoc) (scene.Material, error) {
	switch doc.Type {
	case MaterialColor:
		c, err := colorFromDoc(doc.RGBA)
		if err != nil {
			return nil, err
		}
		return c, nil
	case MaterialTexture:
		if doc.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidScene, "texture material has no uri")
		}
		return scene.Texture{URI: doc.URI}, nil
	case MaterialPhong:
		var p scene.Phong
		var err error
		if p.Ambient, err = colorFromDoc(doc.Ambient); err != nil {
			return nil, err
		}
		if p.Diffuse, err = colorFromDoc(doc.Diffuse); err != nil {
			return nil, err
		}
		if p.Specular, err = colorFromDoc(doc.Specular); err != nil {
			return nil, err
		}
		if p.Emissive, err = colorFromDoc(doc.Emissive); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown material type %q", doc.Type)
	}
}

func colorFromDoc(rgba []float64) (scene.Color, error) {
	switch len(rgba) {
	case 0:
		return scene.Color{}, nil
	case 4:
		return scene.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
	default:
		return scene.Color{}, errors.New(errors.ErrCodeInvalidScene, "color needs 4 channels, got %d", len(rgba))
	}
}

func sensorFromDoc(doc SensorDoc) (scene.Sensor, error) {
	if doc.Type != SensorCamera {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown sensor type %q", doc.Type)
	}
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "sensor has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, err
	}
	return &scene.CameraSensor{
		SensorName:    doc.Name,
		Origin:        origin,
		HorizontalFOV: doc.HorizontalFOV,
		ImageWidth:    doc.Width,
		ImageHeight:   doc.Height,
		ClipNear:      doc.ClipNear,
		ClipFar:       doc.ClipFar,
	}, nil
}

func jointFromDoc(doc JointDoc) (*scene.Joint, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "joint has no name")
	}
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "joint %q", doc.Name)
	}
	info, err := jointInfoFromDoc(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "joint %q", doc.Name)
	}

	j := &scene.Joint{
		Name:   doc.Name,
		Parent: doc.Parent,
		Child:  doc.Child,
		Info:   info,
	}
	if origin != nil {
		j.Origin = *origin
	}
	if doc.Calibration != nil {
		j.Calibration = &scene.JointCalibration{Rising: doc.Calibration.Rising, Falling: doc.Calibration.Falling}
	}
	if doc.Mimic != nil {
		j.Mimic = &scene.JointMimic{Joint: doc.Mimic.Joint, Multiplier: doc.Mimic.Multiplier, Offset: doc.Mimic.Offset}
	}
	if doc.Safety != nil {
		j.Control = &scene.JointControlInfo{
			Lower:     doc.Safety.Lower,
			Upper:     doc.Safety.Upper,
			KPosition: doc.Safety.KPosition,
			KVelocity: doc.Safety.KVelocity,
		}
	}
	return j, nil
}

func jointInfoFromDoc(doc JointDoc) (scene.JointInfo, error) {
	if doc.Type == scene.JointFixed {
		return scene.FixedJointInfo{}, nil
	}
	if len(doc.Axis) != 3 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "%s joint needs a 3-component axis, got %d", doc.Type, len(doc.Axis))
	}
	axis := mgl64.Vec3{doc.Axis[0], doc.Axis[1], doc.Axis[2]}

	var limit *scene.JointLimit
	if doc.Limit != nil {
		limit = &scene.JointLimit{
			Lower:    doc.Limit.Lower,
			Upper:    doc.Limit.Upper,
			Effort:   doc.Limit.Effort,
			Velocity: doc.Limit.Velocity,
		}
	}
	var dynamics *scene.JointDynamics
	if doc.Dynamics != nil {
		dynamics = &scene.JointDynamics{Damping: doc.Dynamics.Damping, Friction: doc.Dynamics.Friction}
	}

	switch doc.Type {
	case scene.JointContinuous:
		return scene.ContinuousJointInfo{Axis: axis, Dynamics: dynamics}, nil
	case scene.JointRevolute:
		return scene.RevoluteJointInfo{Axis: axis, Limit: limit, Dynamics: dynamics}, nil
	case scene.JointPrismatic:
		return scene.PrismaticJointInfo{Axis: axis, Limit: limit, Dynamics: dynamics}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown joint type %q", doc.Type)
	}
}

func includeFromDoc(doc IncludeDoc) (*scene.Include, error) {
	if doc.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "include has no uri")
	}
	opts := make([]scene.IncludeOption, 0, 4)
	origin, err := poseFromDoc(doc.Pose)
	if err != nil {
		return nil, err
	}
	if origin != nil {
		opts = append(opts, scene.WithIncludePose(*origin))
	}
	if doc.Parent != "" {
		opts = append(opts, scene.WithIncludeParent(doc.Parent))
	}
	if doc.Static {
		opts = append(opts, scene.WithIncludeStatic())
	}
	if len(doc.Scale) > 0 {
		if len(doc.Scale) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidScale, "include scale needs 3 components, got %d", len(doc.Scale))
		}
		opts = append(opts, scene.WithScale(mgl64.Vec3{doc.Scale[0], doc.Scale[1], doc.Scale[2]}))
	}
	if doc.UniformScale != nil {
		opts = append(opts, scene.WithUniformScale(*doc.UniformScale))
	}
	return scene.NewInclude(doc.Name, doc.URI, opts...)
}

// =============================================================================
// Scene → Document Conversion
// =============================================================================

// FromModel converts an in-memory scene tree to its document form. It fails
// on shape or material implementations outside the serializable set.
func FromModel(m *scene.Model) (ModelDoc, error) {
	doc := ModelDoc{
		Name:   m.Name,
		Pose:   poseToDoc(m.Origin),
		Parent: m.Parent,
		Static: m.Static,
	}

	for _, l := range m.Links {
		ld, err := linkToDoc(l)
		if err != nil {
			return ModelDoc{}, err
		}
		doc.Links = append(doc.Links, ld)
	}
	for _, j := range m.Joints {
		jd, err := jointToDoc(j)
		if err != nil {
			return ModelDoc{}, err
		}
		doc.Joints = append(doc.Joints, jd)
	}
	for _, sub := range m.Models {
		sd, err := FromModel(sub)
		if err != nil {
			return ModelDoc{}, err
		}
		doc.Models = append(doc.Models, sd)
	}
	for _, inc := range m.Includes {
		doc.Includes = append(doc.Includes, includeToDoc(inc))
	}

	return doc, nil
}

func linkToDoc(l *scene.Link) (LinkDoc, error) {
	doc := LinkDoc{Name: l.Name, Parent: l.Parent, Pose: poseToDoc(l.Origin)}

	if l.Inertial != nil {
		doc.Inertial = &InertialDoc{
			Mass: l.Inertial.Mass,
			Pose: valuePoseToDoc(l.Inertial.Origin),
			Inertia: []float64{
				l.Inertial.Inertia.Ixx, l.Inertial.Inertia.Ixy, l.Inertial.Inertia.Ixz,
				l.Inertial.Inertia.Iyy, l.Inertial.Inertia.Iyz,
				l.Inertial.Inertia.Izz,
			},
		}
	}
	for _, c := range l.Collisions {
		shape, err := shapeToDoc(c.Shape)
		if err != nil {
			return LinkDoc{}, err
		}
		doc.Collisions = append(doc.Collisions, GeometryDoc{
			Name:    c.Name,
			Pose:    poseToDoc(c.Origin),
			Shape:   shape,
			Surface: c.Surface != nil,
		})
	}
	for _, v := range l.Visuals {
		shape, err := shapeToDoc(v.Shape)
		if err != nil {
			return LinkDoc{}, err
		}
		gd := GeometryDoc{Name: v.Name, Pose: poseToDoc(v.Origin), Shape: shape}
		if v.Material != nil {
			md, err := materialToDoc(v.Material)
			if err != nil {
				return LinkDoc{}, err
			}
			gd.Material = &md
		}
		doc.Visuals = append(doc.Visuals, gd)
	}
	for _, s := range l.Sensors {
		sd, err := sensorToDoc(s)
		if err != nil {
			return LinkDoc{}, err
		}
		doc.Sensors = append(doc.Sensors, sd)
	}

	return doc, nil
}

func shapeToDoc(s scene.Shape) (ShapeDoc, error) {
	switch shape := s.(type) {
	case scene.Box:
		return ShapeDoc{Type: scene.ShapeBox, Dims: shape.Size[:]}, nil
	case scene.Sphere:
		return ShapeDoc{Type: scene.ShapeSphere, Dims: []float64{shape.Radius}}, nil
	case scene.Cylinder:
		return ShapeDoc{Type: scene.ShapeCylinder, Dims: []float64{shape.Radius, shape.Length}}, nil
	case scene.Capsule:
		return ShapeDoc{Type: scene.ShapeCapsule, Dims: []float64{shape.Radius, shape.Length}}, nil
	case scene.Plane:
		return ShapeDoc{Type: scene.ShapePlane, Dims: []float64{
			shape.Normal.X(), shape.Normal.Y(), shape.Normal.Z(), shape.Width, shape.Height,
		}}, nil
	case scene.Mesh:
		return ShapeDoc{Type: scene.ShapeMesh, URI: shape.URI, Scale: shape.Scale[:]}, nil
	default:
		return ShapeDoc{}, errors.New(errors.ErrCodeInvalidShape, "shape %T is not serializable", s)
	}
}

func materialToDoc(m scene.Material) (MaterialDoc, error) {
	switch material := m.(type) {
	case scene.Color:
		return MaterialDoc{Type: MaterialColor, RGBA: colorToDoc(material)}, nil
	case scene.Texture:
		return MaterialDoc{Type: MaterialTexture, URI: material.URI}, nil
	case scene.Phong:
		return MaterialDoc{
			Type:     MaterialPhong,
			Ambient:  colorToDoc(material.Ambient),
			Diffuse:  colorToDoc(material.Diffuse),
			Specular: colorToDoc(material.Specular),
			Emissive: colorToDoc(material.Emissive),
		}, nil
	default:
		return MaterialDoc{}, errors.New(errors.ErrCodeInvalidScene, "material %T is not serializable", m)
	}
}

func colorToDoc(c scene.Color) []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

func sensorToDoc(s scene.Sensor) (SensorDoc, error) {
	cam, ok := s.(*scene.CameraSensor)
	if !ok {
		return SensorDoc{}, errors.New(errors.ErrCodeInvalidScene, "sensor %T is not serializable", s)
	}
	return SensorDoc{
		Name:          cam.SensorName,
		Type:          SensorCamera,
		Pose:          poseToDoc(cam.Origin),
		HorizontalFOV: cam.HorizontalFOV,
		Width:         cam.ImageWidth,
		Height:        cam.ImageHeight,
		ClipNear:      cam.ClipNear,
		ClipFar:       cam.ClipFar,
	}, nil
}

func jointToDoc(j *scene.Joint) (JointDoc, error) {
	doc := JointDoc{
		Name:   j.Name,
		Parent: j.Parent,
		Child:  j.Child,
		Pose:   valuePoseToDoc(j.Origin),
	}
	if j.Info == nil {
		return JointDoc{}, errors.New(errors.ErrCodeInvalidScene, "joint %q has no kinematic info", j.Name)
	}
	doc.Type = j.Info.Type()

	switch info := j.Info.(type) {
	case scene.FixedJointInfo:
	case scene.ContinuousJointInfo:
		doc.Axis = info.Axis[:]
		doc.Dynamics = dynamicsToDoc(info.Dynamics)
	case scene.RevoluteJointInfo:
		doc.Axis = info.Axis[:]
		doc.Limit = limitToDoc(info.Limit)
		doc.Dynamics = dynamicsToDoc(info.Dynamics)
	case scene.PrismaticJointInfo:
		doc.Axis = info.Axis[:]
		doc.Limit = limitToDoc(info.Limit)
		doc.Dynamics = dynamicsToDoc(info.Dynamics)
	default:
		return JointDoc{}, errors.New(errors.ErrCodeInvalidScene, "joint info %T is not serializable", j.Info)
	}

	if j.Calibration != nil {
		doc.Calibration = &CalibrationDoc{Rising: j.Calibration.Rising, Falling: j.Calibration.Falling}
	}
	if j.Mimic != nil {
		doc.Mimic = &MimicDoc{Joint: j.Mimic.Joint, Multiplier: j.Mimic.Multiplier, Offset: j.Mimic.Offset}
	}
	if j.Control != nil {
		doc.Safety = &SafetyDoc{
			Lower:     j.Control.Lower,
			Upper:     j.Control.Upper,
			KPosition: j.Control.KPosition,
			KVelocity: j.Control.KVelocity,
		}
	}
	return doc, nil
}

func limitToDoc(l *scene.JointLimit) *LimitDoc {
	if l == nil {
		return nil
	}
	return &LimitDoc{Lower: l.Lower, Upper: l.Upper, Effort: l.Effort, Velocity: l.Velocity}
}

func dynamicsToDoc(d *scene.JointDynamics) *DynamicsDoc {
	if d == nil {
		return nil
	}
	return &DynamicsDoc{Damping: d.Damping, Friction: d.Friction}
}

func includeToDoc(inc *scene.Include) IncludeDoc {
	doc := IncludeDoc{
		Name:   inc.Name,
		URI:    inc.URI,
		Pose:   poseToDoc(inc.Origin),
		Parent: inc.Parent,
		Static: inc.Static,
	}
	if uniform, err := inc.UniformScale(); err == nil {
		doc.UniformScale = &uniform
	} else if scale := inc.Scale(); scale != (mgl64.Vec3{1, 1, 1}) {
		doc.Scale = scale[:]
	}
	return doc
}

// =============================================================================
// Internal Helpers
// =============================================================================

// poseFromDoc decodes a six-element pose array. An empty array means "no
// pose set" and decodes to nil.
func poseFromDoc(vals []float64) (*pose.Pose, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	if len(vals) != 6 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "pose needs 6 values, got %d", len(vals))
	}
	p := pose.New(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	return &p, nil
}

func poseToDoc(p *pose.Pose) []float64 {
	if p == nil {
		return nil
	}
	return []float64{
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.RPY.X(), p.RPY.Y(), p.RPY.Z(),
	}
}

// valuePoseToDoc encodes a by-value pose, omitting the identity so documents
// stay minimal.
func valuePoseToDoc(p pose.Pose) []float64 {
	if p.IsIdentity() {
		return nil
	}
	return poseToDoc(&p)
}
