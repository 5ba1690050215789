package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Track is decoded 16-bit little-endian PCM ready for the audio device.
type Track struct {
	SampleRate int
	Channels   int
	PCM        []byte
}

// bytesPerSecond is the PCM byte rate, used for logging durations.
func (t *Track) bytesPerSecond() int {
	return t.SampleRate * t.Channels * 2
}

// LoadWAV reads and decodes a WAV file.
func LoadWAV(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading track: %w", err)
	}
	t, err := DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return t, nil
}

// DecodeWAV walks the RIFF chunks and returns the PCM payload along with
// its format. Only uncompressed 16-bit PCM is supported.
func DecodeWAV(wav []byte) (*Track, error) {
	if len(wav) < 12 {
		return nil, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	var t Track
	var haveFmt bool

	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		start := pos + 8
		end := start + chunkSize
		if end > len(wav) {
			end = len(wav)
		}

		switch chunkID {
		case "fmt ":
			if end-start < 16 {
				return nil, errors.New("fmt chunk too short")
			}
			format := binary.LittleEndian.Uint16(wav[start : start+2])
			t.Channels = int(binary.LittleEndian.Uint16(wav[start+2 : start+4]))
			t.SampleRate = int(binary.LittleEndian.Uint32(wav[start+4 : start+8]))
			bits := binary.LittleEndian.Uint16(wav[start+14 : start+16])
			if format != 1 {
				return nil, fmt.Errorf("unsupported wav encoding %d (want PCM)", format)
			}
			if bits != 16 {
				return nil, fmt.Errorf("unsupported bit depth %d (want 16)", bits)
			}
			if t.Channels < 1 || t.Channels > 2 {
				return nil, fmt.Errorf("unsupported channel count %d", t.Channels)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, errors.New("data chunk before fmt chunk")
			}
			t.PCM = wav[start:end]
			return &t, nil
		}

		pos = start + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}

// loopReader serves PCM to the device, wrapping around when looping.
// The device goroutine calls Read while the UI flips loop.
type loopReader struct {
	mu   sync.Mutex
	data []byte
	pos  int
	loop bool
}

func newLoopReader(data []byte, loop bool) *loopReader {
	return &loopReader{data: data, loop: loop}
}

func (r *loopReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) {
		if r.pos >= len(r.data) {
			if !r.loop {
				break
			}
			r.pos = 0
		}
		c := copy(p[n:], r.data[r.pos:])
		r.pos += c
		n += c
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *loopReader) setLoop(loop bool) {
	r.mu.Lock()
	r.loop = loop
	r.mu.Unlock()
}

// exhausted reports whether a non-looping reader has served everything.
func (r *loopReader) exhausted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.loop && r.pos >= len(r.data)
}

func (r *loopReader) rewind() {
	r.mu.Lock()
	r.pos = 0
	r.mu.Unlock()
}
