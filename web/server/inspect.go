package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes the first object seen through a pixel
type InspectResult struct {
	Hit         bool
	HitRecord   material.HitRecord
	ObjectIndex int
	Object      geometry.Object
}

// inspectPixel casts a ray from the lens center through the center of pixel
// (pixelX, pixelY), counted from the top-left, and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	cameraConfig := sceneObj.CameraConfig
	cameraConfig.Aperture = 0
	camera := geometry.NewCamera(cameraConfig, float64(width)/float64(height))

	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	// With no aperture the lens sample has no effect
	ray := camera.GetRay(u, v, core.NewPixelSampler(0, 0))

	hit, index := sceneObj.World.HitIndex(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if index < 0 {
		return InspectResult{ObjectIndex: -1}
	}
	return InspectResult{
		Hit:         true,
		HitRecord:   hit,
		ObjectIndex: index,
		Object:      sceneObj.World[index],
	}
}

// extractMaterialInfo describes a material for display
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"albedo": vecArray(mat.Albedo),
		"color":  hexColor(mat.Albedo),
	}

	switch mat.Kind {
	case material.MetalKind:
		properties["fuzz"] = mat.Fuzz
	case material.DielectricKind:
		properties["ior"] = mat.IOR
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes an object's shape and placement
func extractGeometryInfo(object geometry.Object) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"position": vecArray(object.Transform.Origin()),
	}

	switch object.Kind {
	case geometry.SphereKind:
		properties["radius"] = object.Radius
	case geometry.PlaneKind:
		properties["normal"] = vecArray(object.Normal)
	case geometry.SDFKind:
		properties["sdf"] = describeSDF(object.SDF)
	}
	return object.Kind.String(), properties
}

// describeSDF returns the tree of node kinds and parameters
func describeSDF(n *sdf.Node) map[string]interface{} {
	if n == nil {
		return nil
	}

	node := map[string]interface{}{"type": n.Kind.String()}
	switch n.Kind {
	case sdf.SphereKind:
		node["radius"] = n.Radius
	case sdf.PlaneKind:
		node["normal"] = vecArray(n.Normal)
	case sdf.BoxKind:
		node["halfExtents"] = vecArray(n.HalfExtents)
	case sdf.RoundingKind:
		node["amount"] = n.Amount
		node["sdf"] = describeSDF(n.Child)
	case sdf.UnionKind, sdf.IntersectionKind:
		node["smoothing"] = n.Smoothing
		node["left"] = describePositioned(n.Left)
		node["right"] = describePositioned(n.Right)
	}
	return node
}

func describePositioned(p sdf.Positioned) map[string]interface{} {
	return map[string]interface{}{
		"pos": vecArray(p.Offset),
		"sdf": describeSDF(p.Node),
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	channel := func(x float64) int {
		return int(math.Max(0, math.Min(1, x)) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := s.parseSceneParams(values)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.loadScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectIndex: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectIndex:  result.ObjectIndex,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
