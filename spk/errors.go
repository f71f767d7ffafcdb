package spk

import "errors"

// ErrKernelParse is returned when a kernel's bytes cannot be parsed as a
// DAF/SPK file.
var ErrKernelParse = errors.New("spk: kernel parse error")

// ErrNoSegmentPath is returned when no chain of segments connects a
// requested (target, center) pair to the Solar System Barycenter.
var ErrNoSegmentPath = errors.New("spk: no segment path to SSB")

// ErrOutOfRange is returned when a requested ephemeris time falls outside
// every segment covering a (target, center) pair.
var ErrOutOfRange = errors.New("spk: epoch outside segment range")
