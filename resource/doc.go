// Package resource bounds what dataset loading may consume: how many blobs
// are fetched at once, how many raw bytes parsers hold, and how fast remote
// stores are read.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	release, err := rc.Slot(ctx)
//	if err != nil { ... }
//	defer release()
//
// A nil *Controller imposes no limits.
package resource
