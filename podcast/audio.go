package podcast

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

var ErrInvalidWAV = errors.New("not a valid WAV file")

// WAVInfo describes the format and length of a WAV file.
type WAVInfo struct {
	Channels    int
	SampleRate  int
	SampleWidth int // bytes per sample
	Frames      int
}

// WriteWAV wraps raw little-endian PCM in a WAV container at path, creating
// parent directories as needed. 8-bit samples are unsigned, wider samples
// signed. A trailing partial frame is dropped.
func WriteWAV(path string, pcm []byte, channels, rate, sampleWidth int) error {
	if channels <= 0 || rate <= 0 {
		return fmt.Errorf("invalid audio format: %d channels at %d Hz", channels, rate)
	}
	if sampleWidth < 1 || sampleWidth > 4 {
		return fmt.Errorf("unsupported sample width %d", sampleWidth)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	frameSize := channels * sampleWidth
	pcm = pcm[:len(pcm)/frameSize*frameSize]

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           decodeSamples(pcm, sampleWidth),
		SourceBitDepth: sampleWidth * 8,
	}

	enc := wav.NewEncoder(f, rate, sampleWidth*8, channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode audio: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize audio: %w", err)
	}
	return f.Close()
}

func decodeSamples(pcm []byte, width int) []int {
	out := make([]int, 0, len(pcm)/width)
	for i := 0; i+width <= len(pcm); i += width {
		b := pcm[i : i+width]
		switch width {
		case 1:
			out = append(out, int(b[0]))
		case 2:
			out = append(out, int(int16(binary.LittleEndian.Uint16(b))))
		case 3:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v -= 1 << 24
			}
			out = append(out, int(v))
		case 4:
			out = append(out, int(int32(binary.LittleEndian.Uint32(b))))
		}
	}
	return out
}

// ReadWAVInfo decodes the header and sample data of a WAV file.
func ReadWAVInfo(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return WAVInfo{}, fmt.Errorf("%s: %w", path, ErrInvalidWAV)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return WAVInfo{}, fmt.Errorf("decode audio: %w", err)
	}
	return WAVInfo{
		Channels:    int(d.NumChans),
		SampleRate:  int(d.SampleRate),
		SampleWidth: int(d.BitDepth) / 8,
		Frames:      buf.NumFrames(),
	}, nil
}
