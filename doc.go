// Package lloyd partitions points into k clusters with Lloyd's algorithm.
//
// Lloyd's algorithm alternates two steps until the assignment of points to
// clusters stops changing: every point is assigned to its nearest center,
// then every center is moved to the mean of its members. The result is a
// local minimum of the within-cluster sum of squared distances (WCSS).
//
// # Quick Start
//
//	ds, _ := dataset.Read(strings.NewReader("0,0\n0,1\n10,10\n10,11\n"))
//	res, _ := lloyd.Cluster(ctx, ds, 2, lloyd.WithSeed(42))
//	for label, members := range res.Clustering {
//	    fmt.Println(label, members)
//	}
//
// # Initialization
//
// The k initial centers are k distinct dataset points drawn uniformly
// without replacement. The draw is the only randomness in a run: WithSeed or
// WithRand make runs reproducible. k must satisfy 0 < k <= n-1.
//
// # Termination
//
// A run converges when an assignment pass reproduces the previous one
// exactly. Runs are bounded by WithMaxIterations (300 by default) and by the
// context passed to Cluster.
//
// # Empty Clusters
//
// If a cluster loses all of its members the run fails with *ErrEmptyCluster.
// WithEmptyClusterPolicy(EmptyClusterReseed) instead moves the center of the
// empty cluster onto a random dataset point and continues.
//
// # Loading Data
//
// Points come from package dataset, which reads CSV from local files, S3 or
// MinIO through package blobstore. The lloyd command wraps both:
//
//	lloyd cluster --source points.csv --k 3 --output report.json
package lloyd
