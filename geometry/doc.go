// Package geometry provides the point arithmetic used by the clusterer.
//
// # Distance
//
// SquaredDistance returns the squared Euclidean distance. No square root is
// taken: nearest-center selection and WCSS cost are both defined on the squared
// form, so reported costs are sums of squared distances.
//
//	d, err := geometry.SquaredDistance(geometry.Point{0, 0}, geometry.Point{3, 4}) // 25
//
// # Centroids
//
// Centroid returns the per-dimension arithmetic mean of a non-empty group:
//
//	c, err := geometry.Centroid([]geometry.Point{{0, 0}, {2, 2}}) // [1 1]
package geometry
