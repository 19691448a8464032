// Package wav reads RIFF/WAVE headers without decoding audio content.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotWave indicates the file is not a RIFF/WAVE container.
var ErrNotWave = errors.New("not a RIFF/WAVE file")

// Info holds the header fields needed to derive a duration.
type Info struct {
	SampleRate uint32
	Channels   uint16
	BitDepth   uint16
	Frames     uint64
}

// DurationMS returns the audio duration in milliseconds.
func (i Info) DurationMS() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames) * 1000.0 / float64(i.SampleRate)
}

// ReadInfo opens path and parses its WAVE header. Only the fmt and data
// chunks are consulted; sample data is never read.
func ReadInfo(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer file.Close()

	info, err := Parse(file)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Parse reads a WAVE header from r.
func Parse(r io.Reader) (Info, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotWave, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Info{}, ErrNotWave
	}

	var info Info
	var blockAlign uint16
	var haveFmt, haveData bool
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return Info{}, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return Info{}, fmt.Errorf("%w: fmt chunk too short", ErrNotWave)
			}
			var fmtChunk [16]byte
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return Info{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			info.Channels = binary.LittleEndian.Uint16(fmtChunk[2:4])
			info.SampleRate = binary.LittleEndian.Uint32(fmtChunk[4:8])
			blockAlign = binary.LittleEndian.Uint16(fmtChunk[12:14])
			info.BitDepth = binary.LittleEndian.Uint16(fmtChunk[14:16])
			haveFmt = true
			if err := discard(r, int64(size)-16+pad(size)); err != nil {
				return Info{}, err
			}
		case "data":
			if !haveFmt {
				return Info{}, fmt.Errorf("%w: data chunk before fmt chunk", ErrNotWave)
			}
			frameSize := uint64(blockAlign)
			if frameSize == 0 {
				frameSize = uint64(info.Channels) * uint64(info.BitDepth) / 8
			}
			if frameSize == 0 {
				return Info{}, fmt.Errorf("%w: zero frame size", ErrNotWave)
			}
			info.Frames = uint64(size) / frameSize
			haveData = true
			// Duration comes from the declared size; skip the samples.
			if err := discard(r, int64(size)+pad(size)); err != nil && !errors.Is(err, io.EOF) {
				return Info{}, err
			}
		default:
			if err := discard(r, int64(size)+pad(size)); err != nil {
				return Info{}, err
			}
		}
		if haveFmt && haveData {
			break
		}
	}

	if !haveFmt || !haveData {
		return Info{}, fmt.Errorf("%w: missing fmt or data chunk", ErrNotWave)
	}
	if info.SampleRate == 0 {
		return Info{}, fmt.Errorf("%w: zero sample rate", ErrNotWave)
	}
	return info, nil
}

// Chunks are word-aligned; odd sizes carry one padding byte.
func pad(size uint32) int64 {
	if size%2 == 1 {
		return 1
	}
	return 0
}

func discard(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if seeker, ok := r.(io.Seeker); ok {
		_, err := seeker.Seek(n, io.SeekCurrent)
		return err
	}
	_, err := io.CopyN(io.Discard, r, n)
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return err
}
