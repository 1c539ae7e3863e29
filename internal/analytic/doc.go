// Package analytic holds closed-form estimates that sit next to the
// enclosure simulation: drag on a fragment crossing a mitigation medium and
// the share of blast energy a water charge can absorb.
package analytic
