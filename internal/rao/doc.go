// Package rao loads and caches the vessel's response amplitude operators:
// per-speed, per-heading frequency-response functions for heave and pitch.
//
// # Table format
//
// RAO tables are plain text, one file per degree of freedom and speed, named
// <dof>_<speed>kn.txt (e.g. heave_15kn.txt). A header line starting with
// #HEADING lists the tabulated wave headings in degrees; a later header line
// containing the token w(r/s) marks the start of the data rows. Each data row
// is an angular frequency in rad/s followed by one amplitude column per
// heading and then one phase column (degrees) per heading, in header order:
//
//	#HEADING 0 30 60 90 120 150 180
//	w(r/s)  amp...                     phase...
//	0.25    0.991 0.990 ... 0.989      -1.2 -1.4 ... -2.0
//
// Heave tables are m/m, pitch tables rad/m; the loader is unit-agnostic.
//
// Phases are normalized into (−180,180] and unwrapped across the ascending
// frequency axis so downstream phase differences are continuous. Rows are
// stable-sorted by frequency; generators that emit rows out of order are
// tolerated, duplicate frequencies keep their file order.
//
// # Lookup
//
// Requested speed resolves to the nearest speed discovered in the data
// directory, and the heading is folded into [0,180] by reflection before
// snapping to the nearest tabulated heading. Ties resolve to the lower
// candidate in both cases. Parsed functions are cached per (dof, speed,
// heading) bucket; a singleflight group guarantees exactly one parse per key
// no matter how many goroutines race on first use, and cached functions are
// immutable afterwards.
package rao
