// Package domain implements the spectral-analysis core of the seakeeping
// advisor: wave spectrum synthesis, motion power spectral densities, and the
// Motion Sickness Dose Value (MSDV) integral.
//
// # Pipeline
//
// Each assessment run is a pure function of the current sea state, the vessel
// state, and a set of precomputed response amplitude operators (RAOs, parsed
// by the rao package):
//
//  1. Synthesize a JONSWAP wave-elevation spectrum from (Hs, Tp), calibrating
//     the Phillips constant alpha so the spectrum's zeroth moment reproduces
//     the requested significant wave height.
//  2. Multiply the spectrum through the vessel's heave and pitch RAOs to get
//     displacement PSDs, including the heave-pitch cross term.
//  3. Scale to acceleration PSDs and apply the ISO 2631 Wf frequency
//     weighting (the band most associated with motion sickness).
//  4. Superpose heave, pitch lever arm, and cross contributions into a
//     vertical-motion PSD per hull position, and integrate each into an MSDV.
//
// # Units and conventions
//
// Angular frequency is rad/s throughout; RAO phases arrive in degrees and are
// converted to radians at the point of use. Wave spectral density is
// m²/(rad/s). Hull positions are signed longitudinal offsets in metres from
// midships, positive forward. MSDV carries units m/s^1.5.
//
// The acceleration scaling is deliberately asymmetric: the heave PSD is
// scaled by (2πω)⁴ while the pitch and cross PSDs are scaled by ω⁴ on the
// same angular-frequency grid. This matches the reference formulation the
// vessel response data was validated against; do not "correct" it without
// re-deriving the reference datasets.
//
// # Comfort bands
//
// MSDV values are banded into low / elevated / high / severe labels for
// bridge display. The thresholds are a project-specific simplification of the
// ISO 2631-1 motion-sickness annex, chosen so that "high" roughly corresponds
// to the dose at which a minority of unadapted adults vomit over the implied
// exposure.
package domain
