// Package audioconv decodes recorded utterances (wav, mp3, ogg vorbis/opus)
// into the mono 16 kHz float32 PCM the transcriber consumes.
package audioconv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const TargetRate = 16000

type Format string

const (
	WAV  Format = "wav"
	MP3  Format = "mp3"
	OGG  Format = "ogg"
	Auto Format = ""
)

var ErrUnsupported = errors.New("unsupported audio format")

// DecodeFile picks the decoder from the extension, falling back to sniffing.
func DecodeFile(path string, maxSamples int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, formatFromExt(path), maxSamples)
}

// Decode converts r to mono 16 kHz PCM. maxSamples <= 0 means no limit.
func Decode(r io.ReadSeeker, format Format, maxSamples int) ([]float32, error) {
	if format == Auto {
		var err error
		if format, err = sniff(r); err != nil {
			return nil, err
		}
	}

	var (
		pcm []float32
		sr  int
		err error
	)
	switch format {
	case WAV:
		pcm, sr, err = decodeWAV(r)
	case MP3:
		pcm, sr, err = decodeMP3(r)
	case OGG:
		pcm, sr, err = decodeOgg(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	pcm = resampleLinear(pcm, sr, TargetRate)
	if maxSamples > 0 && len(pcm) > maxSamples {
		pcm = pcm[:maxSamples]
	}
	return pcm, nil
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WAV
	case ".mp3":
		return MP3
	case ".ogg", ".oga", ".opus":
		return OGG
	}
	return Auto
}

func sniff(r io.ReadSeeker) (Format, error) {
	magic := make([]byte, 4)
	n, _ := io.ReadFull(r, magic)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Auto, err
	}

	switch {
	case n == 4 && string(magic) == "RIFF":
		return WAV, nil
	case n == 4 && string(magic) == "OggS":
		return OGG, nil
	case n >= 3 && (string(magic[:3]) == "ID3" || (magic[0] == 0xff && magic[1]&0xe0 == 0xe0)):
		return MP3, nil
	}
	return Auto, ErrUnsupported
}

func decodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav")
	}
	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if pb == nil || len(pb.Data) == 0 {
		return nil, 0, errors.New("empty wav")
	}

	bd := int(dec.BitDepth)
	if bd == 0 {
		bd = 16
	}
	ch, sr := 1, 44100
	if pb.Format != nil {
		if pb.Format.NumChannels > 0 {
			ch = pb.Format.NumChannels
		}
		if pb.Format.SampleRate > 0 {
			sr = pb.Format.SampleRate
		}
	}

	return downmix(intsToFloat32(pb.Data, bd), ch), sr, nil
}

func decodeMP3(r io.Reader) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, err
	}

	// go-mp3 always yields 16-bit little-endian stereo
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		samples[i] = float32(int16(uint16(raw[2*i])|uint16(raw[2*i+1])<<8)) / 32768
	}

	sr := dec.SampleRate()
	if sr <= 0 {
		sr = 44100
	}
	return downmix(samples, 2), sr, nil
}

// decodeOgg tries Vorbis first and falls back to Opus.
func decodeOgg(r io.ReadSeeker) ([]float32, int, error) {
	pcm, format, verr := oggvorbis.ReadAll(r)
	if verr == nil && format != nil && format.Channels > 0 && format.SampleRate > 0 {
		return downmix(pcm, format.Channels), format.SampleRate, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}
	out, oerr := decodeOpus(r)
	if oerr != nil {
		return nil, 0, fmt.Errorf("not vorbis (%v) nor opus: %w", verr, oerr)
	}
	return out, 48000, nil
}

func decodeOpus(r io.ReadSeeker) ([]float32, error) {
	dec, err := popus.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	defer dec.Destroy()

	ch := dec.ChannelCount()
	if ch <= 0 {
		ch = 1
	}

	var (
		out []float32
		buf = make([]int16, 48000*ch/2)
	)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n*ch] {
			out = append(out, float32(v)/32768)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return downmix(out, ch), nil
}

func intsToFloat32(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	for i, v := range data {
		x := float64(v) * scale
		if x > 1 {
			x = 1
		} else if x < -1 {
			x = -1
		}
		out[i] = float32(x)
	}
	return out
}

func downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	frames := len(in) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(in[i*channels+c])
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

func resampleLinear(in []float32, inSR, outSR int) []float32 {
	if inSR == outSR || len(in) == 0 {
		return in
	}
	ratio := float64(outSR) / float64(inSR)
	n := int(float64(len(in))*ratio + 0.5)
	if n == 0 {
		n = 1
	}
	out := make([]float32, n)
	for i := range out {
		src := float64(i) / ratio
		i0 := int(src)
		if i0 >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		a := float32(src - float64(i0))
		out[i] = in[i0]*(1-a) + in[i0+1]*a
	}
	return out
}
