package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/material"
)

// World is an ordered collection of objects. Every object is tested on every
// query; there is no acceleration structure.
type World []Object

// Hit returns the closest hit among all objects with t in [tMin, tMax]
func (w World) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	rec, index := w.HitIndex(ray, tMin, tMax)
	return rec, index >= 0
}

// HitIndex is Hit that also reports which object was hit, or -1 on a miss.
func (w World) HitIndex(ray core.Ray, tMin, tMax float64) (material.HitRecord, int) {
	var closest material.HitRecord
	closestIndex := -1
	closestSoFar := tMax

	for i, object := range w {
		if rec, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closestIndex = i
			closestSoFar = rec.T
			closest = rec
		}
	}

	return closest, closestIndex
}
