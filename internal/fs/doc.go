// Package fs stages blob writes for the local blob store.
//
// WriteFileAtomic writes to a hidden staging file, syncs it and renames it
// into place, so concurrent loaders see either the old blob or the new one.
// The operations it needs are behind [FileSystem]; [OS] is the host
// implementation and [FaultyFS] injects failures in tests:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("report.json", fs.Fault{FailSync: true})
//	err := fs.WriteFileAtomic(ffs, "out/report.json", data, 0o644)
package fs
