package moonsight

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/crescentlab/moonsight/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalKernel assembles a tiny synthetic DAF/SPK buffer with a
// direct Moon-rel-Earth and Sun-rel-Earth segment, mirroring spk's own
// test-kernel-building approach, so InitKernel/providerFor can be
// exercised without a real kernel file.
func buildMinimalKernel(t *testing.T) []byte {
	t.Helper()
	const recordLen = 1024
	const nd, ni = 2, 6
	type seg struct {
		target, center int
		x, y, z        float64
	}
	specs := []seg{
		{301, 399, 100, 200, 300},
		{10, 399, 1000, 0, 0},
	}
	const wordsPerSeg = 9
	headerBytes := 2 * recordLen
	buf := make([]byte, headerBytes+len(specs)*wordsPerSeg*8)
	copy(buf[0:8], "DAF/SPK ")
	binary.LittleEndian.PutUint32(buf[8:12], nd)
	binary.LittleEndian.PutUint32(buf[12:16], ni)
	binary.LittleEndian.PutUint32(buf[76:80], 2)

	summaryDoubles := nd + (ni+1)/2
	summaryBytes := summaryDoubles * 8
	rec := buf[recordLen : 2*recordLen]
	binary.LittleEndian.PutUint64(rec[16:24], math.Float64bits(float64(len(specs))))

	dataOffset := headerBytes
	pos := 24
	for _, s := range specs {
		summary := rec[pos : pos+summaryBytes]
		binary.LittleEndian.PutUint64(summary[0:8], math.Float64bits(-1e9))
		binary.LittleEndian.PutUint64(summary[8:16], math.Float64bits(1e9))
		intOff := nd * 8
		binary.LittleEndian.PutUint32(summary[intOff:], uint32(s.target))
		binary.LittleEndian.PutUint32(summary[intOff+4:], uint32(s.center))
		binary.LittleEndian.PutUint32(summary[intOff+8:], 1)
		binary.LittleEndian.PutUint32(summary[intOff+12:], 2)
		beginAddr := dataOffset/8 + 1
		endAddr := beginAddr + wordsPerSeg - 1
		binary.LittleEndian.PutUint32(summary[intOff+16:], uint32(beginAddr))
		binary.LittleEndian.PutUint32(summary[intOff+20:], uint32(endAddr))

		data := buf[dataOffset : dataOffset+wordsPerSeg*8]
		words := []float64{0, 1e9, s.x, s.y, s.z, -1e9, 2e9, 5, 1}
		for i, w := range words {
			binary.LittleEndian.PutUint64(data[i*8:i*8+8], math.Float64bits(w))
		}
		dataOffset += wordsPerSeg * 8
		pos += summaryBytes
	}

	return buf
}

func TestInitKernelInstallsActiveKernel(t *testing.T) {
	buf := buildMinimalKernel(t)
	k, err := InitKernel(buf)
	require.NoError(t, err)
	assert.Same(t, k, ActiveKernel())
}

func TestInitKernelRejectsMalformedBuffer(t *testing.T) {
	_, err := InitKernel([]byte("not a kernel"))
	assert.Error(t, err)
}

func TestProviderForSelectsSourceBasedOnKernelPresence(t *testing.T) {
	_, source := providerFor(nil)
	assert.Equal(t, "meeus-fallback", source)

	buf := buildMinimalKernel(t)
	k, err := InitKernel(buf)
	require.NoError(t, err)
	_, source = providerFor(k)
	assert.Equal(t, "DE442S", source)
}

func TestApplyAtmosphereUsesDefaultsWhenOptionsZero(t *testing.T) {
	obs := observer.New("test", 0, 0, 0)
	obs = applyAtmosphere(obs, Options{})
	assert.Equal(t, DefaultPressureMbar, obs.PressureMbar)
	assert.Equal(t, DefaultTempC, obs.TempC)
}

func TestApplyAtmosphereHonorsExplicitOptions(t *testing.T) {
	obs := observer.New("test", 0, 0, 0)
	obs = applyAtmosphere(obs, Options{PressureMbar: 950.0, TempC: 25.0})
	assert.Equal(t, 950.0, obs.PressureMbar)
	assert.Equal(t, 25.0, obs.TempC)
}

func TestDefaultOptionsSelectsOptimizedBestTime(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, BestTimeOptimized, opts.BestTimeMethod)
}
