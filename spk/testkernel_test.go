package spk

import (
	"encoding/binary"
	"math"
)

// constSegmentSpec describes a Type 2 segment whose single Chebyshev
// record encodes a constant position (zero velocity), used to build
// small synthetic kernels for tests without needing a real DE44xS file.
type constSegmentSpec struct {
	target, center     int
	startET, endET     float64
	x, y, z            float64
}

// buildTestKernel assembles a minimal DAF/SPK byte buffer containing one
// Type 2 segment per spec, all sharing a single summary record.
func buildTestKernel(specs []constSegmentSpec) []byte {
	const nd, ni = 2, 6
	const headerBytes = 2 * recordLen // file record + one summary record

	// Each segment's data: 5 words of record (mid, radius, X0, Y0, Z0)
	// plus 4 words of directory (init, intlen, rsize, n).
	const wordsPerSeg = 9
	totalDataBytes := len(specs) * wordsPerSeg * 8

	buf := make([]byte, headerBytes+totalDataBytes)

	copy(buf[0:8], "DAF/SPK ")
	binary.LittleEndian.PutUint32(buf[8:12], nd)
	binary.LittleEndian.PutUint32(buf[12:16], ni)
	binary.LittleEndian.PutUint32(buf[76:80], 2) // FWARD = record 2

	summaryDoubles := nd + (ni+1)/2
	summaryBytes := summaryDoubles * 8

	rec := buf[recordLen : 2*recordLen]
	binary.LittleEndian.PutUint64(rec[0:8], math.Float64bits(0))  // next
	binary.LittleEndian.PutUint64(rec[8:16], math.Float64bits(0)) // prev
	binary.LittleEndian.PutUint64(rec[16:24], math.Float64bits(float64(len(specs))))

	dataOffset := headerBytes
	pos := 24
	for _, spec := range specs {
		summary := rec[pos : pos+summaryBytes]
		binary.LittleEndian.PutUint64(summary[0:8], math.Float64bits(spec.startET))
		binary.LittleEndian.PutUint64(summary[8:16], math.Float64bits(spec.endET))

		intOff := nd * 8
		binary.LittleEndian.PutUint32(summary[intOff:], uint32(spec.target))
		binary.LittleEndian.PutUint32(summary[intOff+4:], uint32(spec.center))
		binary.LittleEndian.PutUint32(summary[intOff+8:], 1) // frame J2000
		binary.LittleEndian.PutUint32(summary[intOff+12:], 2) // dataType=2
		beginAddr := dataOffset/8 + 1
		endAddr := beginAddr + wordsPerSeg - 1
		binary.LittleEndian.PutUint32(summary[intOff+16:], uint32(beginAddr))
		binary.LittleEndian.PutUint32(summary[intOff+20:], uint32(endAddr))

		data := buf[dataOffset : dataOffset+wordsPerSeg*8]
		words := []float64{
			0, 1e9, // mid, radius
			spec.x, spec.y, spec.z,
			spec.startET, spec.endET - spec.startET, 5, 1, // init, intlen, rsize, n
		}
		for i, w := range words {
			binary.LittleEndian.PutUint64(data[i*8:i*8+8], math.Float64bits(w))
		}

		dataOffset += wordsPerSeg * 8
		pos += summaryBytes
	}

	return buf
}
