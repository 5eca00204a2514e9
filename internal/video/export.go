// Package video exports animations as H.264 video through an external
// ffmpeg process. Frames are rendered in parallel and piped to ffmpeg as a
// PNG stream in order.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"math"
	"os/exec"
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/floeze/naviz/internal/animator"
	"github.com/floeze/naviz/internal/render"
)

// Options controls the export.
type Options struct {
	Width  int
	Height int
	FPS    int
	// Speed is animation time units per second of video. Zero means 1.
	Speed float64
	// Zen renders the content only, without legend and time bar.
	Zen bool
	// FFmpeg is the ffmpeg binary. Empty means "ffmpeg" from PATH.
	FFmpeg string
	Target string
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1920
	}
	if o.Height <= 0 {
		o.Height = 1080
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Speed <= 0 {
		o.Speed = 1
	}
	if o.FFmpeg == "" {
		o.FFmpeg = "ffmpeg"
	}
}

// FrameCount returns the number of frames the export will render.
func FrameCount(duration float64, opts Options) int {
	opts.defaults()
	n := int(math.Ceil(duration / opts.Speed * float64(opts.FPS)))
	if n < 1 {
		n = 1
	}
	return n
}

// FrameTime returns the animation time of a frame.
func FrameTime(frame int, opts Options) float64 {
	opts.defaults()
	return float64(frame) / float64(opts.FPS) * opts.Speed
}

// Progress is called after each frame has been handed to the encoder.
type Progress func(frame, total int)

// Export renders the animation and encodes it into opts.Target.
func Export(ctx context.Context, anim *animator.Animator, opts Options, progress Progress, log *zap.Logger) error {
	opts.defaults()
	total := FrameCount(anim.Duration(), opts)

	cmd := exec.CommandContext(ctx, opts.FFmpeg,
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-r", strconv.Itoa(opts.FPS),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		opts.Target,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening ffmpeg pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}
	log.Info("exporting video",
		zap.String("target", opts.Target),
		zap.Int("frames", total),
		zap.Int("fps", opts.FPS),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height))

	err = renderFrames(ctx, anim, opts, total, stdin, progress)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	if waitErr != nil {
		log.Error("ffmpeg failed", zap.String("stderr", stderr.String()))
		return fmt.Errorf("ffmpeg: %w", waitErr)
	}
	log.Info("video exported", zap.String("target", opts.Target))
	return nil
}

// renderFrames renders all frames across workers and writes them to the
// encoder in frame order.
func renderFrames(ctx context.Context, anim *animator.Animator, opts Options, total int, out io.Writer, progress Progress) error {
	results := make([]chan []byte, total)
	for i := range results {
		results[i] = make(chan []byte, 1)
	}

	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < total; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workers := runtime.NumCPU()
	if workers > total {
		workers = total
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				frame, err := renderFrame(anim, opts, i)
				if err != nil {
					return err
				}
				select {
				case results[i] <- frame:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		for i := 0; i < total; i++ {
			select {
			case frame := <-results[i]:
				if _, err := out.Write(frame); err != nil {
					return fmt.Errorf("writing frame %d: %w", i, err)
				}
				if progress != nil {
					progress(i+1, total)
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

func renderFrame(anim *animator.Animator, opts Options, frame int) ([]byte, error) {
	c := render.NewRasterCanvas(opts.Width, opts.Height)
	r := render.Renderer{Zen: opts.Zen}
	r.Draw(c, float64(opts.Width), float64(opts.Height), anim.Background(), anim.Config(), anim.State(FrameTime(frame, opts)))

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image()); err != nil {
		return nil, fmt.Errorf("encoding frame %d: %w", frame, err)
	}
	return buf.Bytes(), nil
}
