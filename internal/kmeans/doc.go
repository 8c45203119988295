// Package kmeans implements Lloyd's k-means clustering.
//
// The algorithm is split into its steps so each can be tested on its own:
//
//   - SampleInitialCenters draws k distinct dataset points as starting centers.
//   - AssignPoints maps every point to its nearest center (lowest index wins ties).
//   - UpdateCenters recomputes one centroid per label from the assignments.
//   - Run alternates assign and update until the assignment vector stops changing.
//   - TotalCost reports the within-cluster sum of squared distances.
//
// Everything is synchronous. The only randomness comes from the RandomSource
// passed in by the caller.
package kmeans
