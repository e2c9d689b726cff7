package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

const maxVolume = 150

type sinkInput struct {
	ID      int
	Volume  int
	AppName string
}

type fade struct {
	id       int
	from, to int
}

// Ducker lowers the volume of every other PulseAudio/PipeWire stream while
// the assistant talks, and puts it back afterwards.
type Ducker struct {
	mu        sync.Mutex
	selfNames []string
	factor    float64
	minVolume int
	duration  time.Duration

	ducked map[int]int // sink-input id -> original %

	pactl func(ctx context.Context, args ...string) ([]byte, error)
}

func NewDucker(selfNames []string, factor float64, minVolume int, duration time.Duration) *Ducker {
	return &Ducker{
		selfNames: append([]string(nil), selfNames...),
		factor:    factor,
		minVolume: clampVolume(minVolume),
		duration:  duration,
		pactl:     runPactl,
	}
}

func (d *Ducker) Duck(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ducked != nil {
		return nil
	}

	inputs, err := d.list(ctx)
	if err != nil {
		return err
	}

	d.ducked = make(map[int]int)
	var fades []fade
	for _, in := range inputs {
		to := int(math.Round(float64(in.Volume) * d.factor))
		if to < d.minVolume {
			to = d.minVolume
		}
		d.ducked[in.ID] = in.Volume
		fades = append(fades, fade{id: in.ID, from: in.Volume, to: clampVolume(to)})
	}

	return d.apply(ctx, fades)
}

func (d *Ducker) Restore(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ducked == nil {
		return nil
	}

	inputs, err := d.list(ctx)
	if err != nil {
		return err
	}

	var fades []fade
	for _, in := range inputs {
		// streams that appeared after ducking are left alone
		orig, ok := d.ducked[in.ID]
		if !ok {
			continue
		}
		fades = append(fades, fade{id: in.ID, from: in.Volume, to: orig})
	}
	d.ducked = nil

	return d.apply(ctx, fades)
}

func (d *Ducker) list(ctx context.Context) ([]sinkInput, error) {
	out, err := d.pactl(ctx, "list", "sink-inputs")
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}

	var others []sinkInput
	for _, in := range parseSinkInputs(string(out)) {
		if !d.isSelf(in) {
			others = append(others, in)
		}
	}
	return others, nil
}

func (d *Ducker) isSelf(in sinkInput) bool {
	for _, name := range d.selfNames {
		if in.AppName == name {
			return true
		}
	}
	return false
}

func (d *Ducker) apply(ctx context.Context, fades []fade) error {
	if len(fades) == 0 {
		return nil
	}

	const stepDur = 10 * time.Millisecond
	steps := int(d.duration / stepDur)
	if steps < 1 {
		steps = 1
	}

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frac := float64(i) / float64(steps)
		for _, f := range fades {
			v := int(math.Round(float64(f.from) + float64(f.to-f.from)*frac))
			arg := strconv.Itoa(clampVolume(v)) + "%"
			if _, err := d.pactl(ctx, "set-sink-input-volume", strconv.Itoa(f.id), arg); err != nil {
				return fmt.Errorf("set volume id=%d: %w", f.id, err)
			}
		}

		if i < steps {
			time.Sleep(d.duration / time.Duration(steps))
		}
	}

	return nil
}

// parseSinkInputs reads `pactl list sink-inputs` output.
func parseSinkInputs(text string) []sinkInput {
	blocks := strings.Split(text, "Sink Input #")
	if len(blocks) <= 1 {
		return nil
	}

	var res []sinkInput
	for _, block := range blocks[1:] {
		header, body, ok := strings.Cut(block, "\n")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(header))
		if err != nil {
			continue
		}

		in := sinkInput{ID: id}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)

			if strings.HasPrefix(line, "Volume:") && in.Volume == 0 {
				if m := percentRe.FindStringSubmatch(line); len(m) == 2 {
					in.Volume, _ = strconv.Atoi(m[1])
				}
			}

			// application.name = "Firefox"
			if rest, ok := strings.CutPrefix(line, "application.name ="); ok && in.AppName == "" {
				in.AppName = strings.Trim(strings.TrimSpace(rest), `"`)
			}
		}

		if in.Volume == 0 && in.AppName == "" {
			continue
		}
		res = append(res, in)
	}

	return res
}

func runPactl(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "pactl", args...).Output()
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxVolume {
		return maxVolume
	}
	return v
}
