// Package spk parses NAIF DAF/SPK binary ephemeris kernels (Type 2 and
// Type 3 segments) and evaluates body states from them, synthesizing
// segment chains to the Solar System Barycenter when a kernel has no
// direct segment for a requested pair.
package spk

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/crescentlab/moonsight/numkit"
)

const recordLen = 1024

// segment is one Type 2 or Type 3 SPK segment's directory and coefficient
// data, kept in the file's native units (seconds past J2000 TDB, km).
type segment struct {
	target   int
	center   int
	dataType int
	startET  float64
	endET    float64
	init     float64
	intlen   float64
	rsize    int
	n        int
	degree   int // Chebyshev degree per component
	data     []float64
}

// chainLink is one hop of a synthesized path: target's position relative
// to center, read directly from a segment.
type chainLink struct {
	target int
	center int
}

// Kernel is a parsed SPK file: its segments, indexed by (target, center),
// plus every generic chain to SSB discovered while walking the index.
// A Kernel is immutable after Open and safe for concurrent reads.
type Kernel struct {
	segMap       map[[2]int][]*segment
	genericChain map[int][]chainLink // body -> path to SSB, for bodies not named in the fixed chaining table
}

// Open parses kernel bytes (the full contents of a DAF/SPK file) into a
// Kernel. It does not validate the 8-byte "DAF/SPK " magic string (present
// in every real kernel) before parsing — malformed input is instead caught
// by the structural checks below, each of which returns ErrKernelParse.
func Open(buf []byte) (*Kernel, error) {
	if len(buf) < recordLen {
		return nil, fmt.Errorf("%w: file shorter than one record", ErrKernelParse)
	}

	order, nd, err := detectEndianness(buf)
	if err != nil {
		return nil, err
	}
	ni := int(order.Uint32(buf[12:16]))
	fward := int(order.Uint32(buf[76:80]))

	summaryDoubles := nd + (ni+1)/2
	summaryBytes := summaryDoubles * 8

	k := &Kernel{
		segMap:       make(map[[2]int][]*segment),
		genericChain: make(map[int][]chainLink),
	}

	recNum := fward
	seen := make(map[int]bool)
	for recNum != 0 {
		if seen[recNum] {
			return nil, fmt.Errorf("%w: cyclic summary record list", ErrKernelParse)
		}
		seen[recNum] = true

		offset := (recNum - 1) * recordLen
		if offset < 0 || offset+recordLen > len(buf) {
			return nil, fmt.Errorf("%w: summary record %d out of bounds", ErrKernelParse, recNum)
		}
		rec := buf[offset : offset+recordLen]

		nextRec := int(math.Float64frombits(order.Uint64(rec[0:8])))
		nSummaries := int(math.Float64frombits(order.Uint64(rec[16:24])))

		pos := 24
		for i := 0; i < nSummaries; i++ {
			if pos+summaryBytes > recordLen {
				return nil, fmt.Errorf("%w: summary overruns record", ErrKernelParse)
			}
			summary := rec[pos : pos+summaryBytes]

			startET := math.Float64frombits(order.Uint64(summary[0:8]))
			endET := math.Float64frombits(order.Uint64(summary[8:16]))

			intOff := nd * 8
			target := int(int32(order.Uint32(summary[intOff:])))
			center := int(int32(order.Uint32(summary[intOff+4:])))
			dataType := int(int32(order.Uint32(summary[intOff+12:])))
			beginAddr := int(int32(order.Uint32(summary[intOff+16:])))
			endAddr := int(int32(order.Uint32(summary[intOff+20:])))

			if dataType != 2 && dataType != 3 {
				return nil, fmt.Errorf("%w: unsupported segment type %d (target=%d center=%d)",
					ErrKernelParse, dataType, target, center)
			}

			nWords := endAddr - beginAddr + 1
			dataOffset := (beginAddr - 1) * 8
			if nWords <= 0 || dataOffset < 0 || dataOffset+nWords*8 > len(buf) {
				return nil, fmt.Errorf("%w: segment data out of bounds (target=%d center=%d)",
					ErrKernelParse, target, center)
			}
			raw := buf[dataOffset : dataOffset+nWords*8]
			data := make([]float64, nWords)
			for j := range data {
				data[j] = math.Float64frombits(order.Uint64(raw[j*8 : j*8+8]))
			}

			if len(data) < 4 {
				return nil, fmt.Errorf("%w: segment too small for directory (target=%d center=%d)",
					ErrKernelParse, target, center)
			}
			seg := &segment{
				target:   target,
				center:   center,
				dataType: dataType,
				startET:  startET,
				endET:    endET,
				init:     data[len(data)-4],
				intlen:   data[len(data)-3],
				rsize:    int(data[len(data)-2]),
				n:        int(data[len(data)-1]),
				data:     data[:len(data)-4],
			}
			if dataType == 2 {
				seg.degree = (seg.rsize-2)/3 - 1
			} else {
				seg.degree = (seg.rsize-2)/6 - 1
			}

			key := [2]int{target, center}
			k.segMap[key] = append(k.segMap[key], seg)

			pos += summaryBytes
		}

		recNum = nextRec
	}

	for _, segs := range k.segMap {
		sort.Slice(segs, func(i, j int) bool { return segs[i].startET < segs[j].startET })
	}

	// Build every segment target's chain to SSB now, so that State only
	// reads the Kernel once Open has returned.
	for key := range k.segMap {
		if _, ok := k.genericChain[key[0]]; ok {
			continue
		}
		if chain, err := k.buildChain(key[0]); err == nil {
			k.genericChain[key[0]] = chain
		}
	}

	return k, nil
}

// detectEndianness reads ND at bytes [8:12], trying little-endian first;
// if the result is outside [1,100] it retries big-endian.
func detectEndianness(buf []byte) (binary.ByteOrder, int, error) {
	ndLE := int(binary.LittleEndian.Uint32(buf[8:12]))
	if ndLE >= 1 && ndLE <= 100 {
		return binary.LittleEndian, ndLE, nil
	}
	ndBE := int(binary.BigEndian.Uint32(buf[8:12]))
	if ndBE >= 1 && ndBE <= 100 {
		return binary.BigEndian, ndBE, nil
	}
	return nil, 0, fmt.Errorf("%w: ND field %d/%d outside [1,100] in either byte order", ErrKernelParse, ndLE, ndBE)
}

// StateVector is a body's position and velocity in an inertial frame
// (km, km/s).
type StateVector struct {
	Position numkit.Vec3
	Velocity numkit.Vec3
}
