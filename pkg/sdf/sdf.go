// Package sdf evaluates signed distance fields built from a tree of
// primitives and smooth boolean combinators.
package sdf

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// gradientEpsilon is the central-difference step used for node kinds without
// an analytic gradient
const gradientEpsilon = 1e-6

// Kind identifies the variant held by a Node
type Kind int

const (
	SphereKind Kind = iota
	PlaneKind
	BoxKind
	RoundingKind
	UnionKind
	IntersectionKind
)

func (k Kind) String() string {
	switch k {
	case SphereKind:
		return "Sphere"
	case PlaneKind:
		return "Plane"
	case BoxKind:
		return "Box"
	case RoundingKind:
		return "Rounding"
	case UnionKind:
		return "Union"
	case IntersectionKind:
		return "Intersection"
	default:
		return "Unknown"
	}
}

// Node is one node of a distance field tree. Only the fields belonging to
// Kind are meaningful. Each node owns its children exclusively.
type Node struct {
	Kind Kind

	Radius      float64   // Sphere
	Normal      core.Vec3 // Plane, unit length
	HalfExtents core.Vec3 // Box

	Child  *Node   // Rounding
	Amount float64 // Rounding

	Left, Right Positioned // Union, Intersection
	Smoothing   float64    // Union, Intersection; 0 means a hard min/max
}

// Positioned is a sub-tree evaluated in its own translated local frame
type Positioned struct {
	Offset core.Vec3
	Node   *Node
}

// At places node so that its local origin sits at offset
func At(offset core.Vec3, node *Node) Positioned {
	return Positioned{Offset: offset, Node: node}
}

// Sphere creates a sphere of the given radius centred on the local origin
func Sphere(radius float64) *Node {
	return &Node{Kind: SphereKind, Radius: radius}
}

// Plane creates a plane through the local origin
func Plane(normal core.Vec3) *Node {
	return &Node{Kind: PlaneKind, Normal: normal.Normalize()}
}

// Box creates an axis-aligned box with the given half extents
func Box(halfExtents core.Vec3) *Node {
	return &Node{Kind: BoxKind, HalfExtents: halfExtents}
}

// Round inflates child by amount
func Round(child *Node, amount float64) *Node {
	return &Node{Kind: RoundingKind, Child: child, Amount: amount}
}

// Union blends two sub-trees with a smooth minimum
func Union(left, right Positioned, smoothing float64) *Node {
	return &Node{Kind: UnionKind, Left: left, Right: right, Smoothing: smoothing}
}

// Intersection blends two sub-trees with a smooth maximum
func Intersection(left, right Positioned, smoothing float64) *Node {
	return &Node{Kind: IntersectionKind, Left: left, Right: right, Smoothing: smoothing}
}

// Distance returns the signed distance from p to the surface described by n:
// negative inside, zero on the boundary
func Distance(n *Node, p core.Vec3) float64 {
	switch n.Kind {
	case SphereKind:
		return p.Length() - n.Radius
	case PlaneKind:
		return p.Dot(n.Normal)
	case BoxKind:
		q := p.Abs().Subtract(n.HalfExtents)
		return q.MaxScalar(0).Length() + min(q.MaxComponent(), 0)
	case RoundingKind:
		return Distance(n.Child, p) - n.Amount
	case UnionKind:
		return smoothMin(n.Left.Distance(p), n.Right.Distance(p), n.Smoothing)
	case IntersectionKind:
		return smoothMax(n.Left.Distance(p), n.Right.Distance(p), n.Smoothing)
	default:
		return math.Inf(1)
	}
}

// Distance evaluates the positioned sub-tree at p, given in the parent frame
func (p Positioned) Distance(point core.Vec3) float64 {
	return Distance(p.Node, point.Subtract(p.Offset))
}

// Gradient returns the unit gradient of the distance field at p, which is the
// outward surface normal for points on the boundary. Sphere and Plane are
// analytic; everything else uses central differences. A vanishing gradient
// yields NaN.
func Gradient(n *Node, p core.Vec3) core.Vec3 {
	switch n.Kind {
	case SphereKind:
		return p.Normalize()
	case PlaneKind:
		return n.Normal
	}

	dx := core.NewVec3(gradientEpsilon, 0, 0)
	dy := core.NewVec3(0, gradientEpsilon, 0)
	dz := core.NewVec3(0, 0, gradientEpsilon)
	return core.NewVec3(
		Distance(n, p.Add(dx))-Distance(n, p.Subtract(dx)),
		Distance(n, p.Add(dy))-Distance(n, p.Subtract(dy)),
		Distance(n, p.Add(dz))-Distance(n, p.Subtract(dz)),
	).Normalize()
}

// smoothMin is the polynomial smooth minimum; k == 0 is exactly min
func smoothMin(d1, d2, k float64) float64 {
	if k == 0 {
		return min(d1, d2)
	}
	h := clamp01(0.5 + 0.5*(d2-d1)/k)
	return lerp(d2, d1, h) - k*h*(1-h)
}

// smoothMax is the polynomial smooth maximum; k == 0 is exactly max
func smoothMax(d1, d2, k float64) float64 {
	if k == 0 {
		return max(d1, d2)
	}
	h := clamp01(0.5 - 0.5*(d2-d1)/k)
	return lerp(d2, d1, h) + k*h*(1-h)
}

func lerp(a, b, x float64) float64 {
	return (1-x)*a + x*b
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
