package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/floeze/naviz/internal/animator"
	"github.com/floeze/naviz/internal/config"
	"github.com/floeze/naviz/internal/importer"
	"github.com/floeze/naviz/internal/parser"
	"github.com/floeze/naviz/internal/render"
	"github.com/floeze/naviz/internal/repository"
	"github.com/floeze/naviz/internal/video"
	"github.com/floeze/naviz/internal/viz"
)

var (
	verbose    bool
	configFile string
	preset     string

	machineID string
	styleID   string
	width     int
	height    int
	fps       int
	speed     float64
	zen       bool
	ffmpeg    string
	output    string
	atTime    float64

	importPrefix string
	importZone   string

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "naviz",
		Short: "neutral atom quantum computer visualizer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVarP(&machineID, "machine", "m", "", "machine id or file")
	rootCmd.PersistentFlags().StringVarP(&styleID, "style", "s", "", "style id or file")

	renderCmd := &cobra.Command{
		Use:   "render [instructions.naviz]",
		Short: "export an animation as video",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&width, "width", 0, "video width")
	renderCmd.Flags().IntVar(&height, "height", 0, "video height")
	renderCmd.Flags().IntVar(&fps, "fps", 0, "frames per second")
	renderCmd.Flags().Float64Var(&speed, "speed", 0, "animation time units per second")
	renderCmd.Flags().BoolVar(&zen, "zen", false, "content only, no legend or time bar")
	renderCmd.Flags().StringVar(&ffmpeg, "ffmpeg", "", "ffmpeg binary")
	renderCmd.Flags().StringVarP(&output, "output", "o", "out.mp4", "output file")

	frameCmd := &cobra.Command{
		Use:   "frame [instructions.naviz]",
		Short: "render a single frame to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrame,
	}
	frameCmd.Flags().IntVar(&width, "width", 0, "frame width")
	frameCmd.Flags().IntVar(&height, "height", 0, "frame height")
	frameCmd.Flags().BoolVar(&zen, "zen", false, "content only, no legend or time bar")
	frameCmd.Flags().Float64VarP(&atTime, "time", "t", 0, "animation time to render")
	frameCmd.Flags().StringVarP(&output, "output", "o", "out.png", "output file (.png or .svg)")

	playCmd := &cobra.Command{
		Use:   "play [instructions.naviz]",
		Short: "play an animation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [instructions.naviz]",
		Short: "play and reload on file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	infoCmd := &cobra.Command{
		Use:   "info [instructions.naviz]",
		Short: "summarize an instruction file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	machinesCmd := &cobra.Command{
		Use:   "machines",
		Short: "list available machines",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repository.Machines()
			if err != nil {
				return err
			}
			return listEntries(r)
		},
	}

	stylesCmd := &cobra.Command{
		Use:   "styles",
		Short: "list available styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repository.Styles()
			if err != nil {
				return err
			}
			return listEntries(r)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file.na]",
		Short: "convert mqt na instructions to the native format",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&importPrefix, "id-prefix", "", "prefix for generated atom ids")
	importCmd.Flags().StringVar(&importZone, "cz-zone", "", "zone id targeted by cz")
	importCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	repoCmd := &cobra.Command{
		Use:   "repo",
		Short: "manage the config repository",
	}
	repoCmd.AddCommand(
		&cobra.Command{
			Use:   "import-machine [file.namachine]",
			Short: "import a machine into the repository",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := repository.Machines()
				if err != nil {
					return err
				}
				return importEntry(r, args[0])
			},
		},
		&cobra.Command{
			Use:   "import-style [file.nastyle]",
			Short: "import a style into the repository",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := repository.Styles()
				if err != nil {
					return err
				}
				return importEntry(r, args[0])
			},
		},
		&cobra.Command{
			Use:   "remove-machine [id]",
			Short: "remove an imported machine",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := repository.Machines()
				if err != nil {
					return err
				}
				return r.Remove(args[0])
			},
		},
		&cobra.Command{
			Use:   "remove-style [id]",
			Short: "remove an imported style",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := repository.Styles()
				if err != nil {
					return err
				}
				return r.Remove(args[0])
			},
		},
	)

	validateCmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "validate machine, style and instruction files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}

	rootCmd.AddCommand(renderCmd, frameCmd, playCmd, watchCmd, infoCmd, machinesCmd, stylesCmd, importCmd, repoCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings resolves the effective config: preset, then config file, then
// flags override individual fields.
func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if machineID != "" {
		cfg.Machine = machineID
	}
	if styleID != "" {
		cfg.Style = styleID
	}
	if cmd.Flags().Changed("width") {
		cfg.Render.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Render.Height = height
	}
	if cmd.Flags().Changed("fps") {
		cfg.Render.FPS = fps
	}
	if cmd.Flags().Changed("speed") {
		cfg.Render.Speed = speed
	}
	if cmd.Flags().Changed("zen") {
		cfg.Render.Zen = zen
	}
	if cmd.Flags().Changed("ffmpeg") {
		cfg.Render.FFmpeg = ffmpeg
	}
	if cmd.Flags().Changed("id-prefix") {
		cfg.Import.IDPrefix = importPrefix
	}
	if cmd.Flags().Changed("cz-zone") {
		cfg.Import.CZZone = importZone
	}

	return cfg, nil
}

// loadMachine resolves a machine by file path or repository id.
func loadMachine(id string) (*parser.MachineConfig, error) {
	if _, err := os.Stat(id); err == nil {
		src, err := os.ReadFile(id)
		if err != nil {
			return nil, err
		}
		return parser.ParseMachineConfig(string(src))
	}
	return repository.Machine(id)
}

func loadStyle(id string) (*parser.VisualConfig, error) {
	if _, err := os.Stat(id); err == nil {
		src, err := os.ReadFile(id)
		if err != nil {
			return nil, err
		}
		return parser.ParseVisualConfig(string(src))
	}
	return repository.Style(id)
}

// loadAnimation builds the animation for an instruction file.
func loadAnimation(cfg *config.Config, path string) (*animator.Animator, *parser.MachineConfig, *parser.VisualConfig, error) {
	machine, err := loadMachine(cfg.Machine)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading machine %q: %w", cfg.Machine, err)
	}
	visual, err := loadStyle(cfg.Style)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading style %q: %w", cfg.Style, err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	instructions, err := parser.ParseInstructions(string(src))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	anim, err := animator.New(machine, visual, instructions)
	if err != nil {
		return nil, nil, nil, err
	}
	return anim, machine, visual, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	anim, _, _, err := loadAnimation(cfg, args[0])
	if err != nil {
		return err
	}

	opts := video.Options{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		FPS:    cfg.Render.FPS,
		Speed:  cfg.Render.Speed,
		Zen:    cfg.Render.Zen,
		FFmpeg: cfg.Render.FFmpeg,
		Target: output,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err = video.Export(ctx, anim, opts, func(frame, total int) {
		fmt.Printf("\rframe %d/%d", frame, total)
	}, logger)
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s in %v\n", output, time.Since(start).Round(time.Millisecond))
	return nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	anim, _, _, err := loadAnimation(cfg, args[0])
	if err != nil {
		return err
	}

	w, h := cfg.Render.Width, cfg.Render.Height
	r := render.Renderer{Zen: cfg.Render.Zen}
	s := anim.State(atTime)

	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		c := render.NewSVGCanvas(float64(w), float64(h))
		r.Draw(c, float64(w), float64(h), anim.Background(), anim.Config(), s)
		return os.WriteFile(output, []byte(c.String()), 0644)
	case ".png":
		c := render.NewRasterCanvas(w, h)
		r.Draw(c, float64(w), float64(h), anim.Background(), anim.Config(), s)
		return writePNG(output, c)
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", filepath.Ext(output))
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	anim, _, _, err := loadAnimation(cfg, args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(anim, filepath.Base(args[0])))
	_, err = p.Run()
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	anim, machine, visual, err := loadAnimation(cfg, args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(anim, filepath.Base(args[0])))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := viz.Watch(ctx, args[0], machine, visual, p, logger); err != nil && ctx.Err() == nil {
			logger.Error("watch failed", zap.Error(err))
		}
	}()

	_, err = p.Run()
	return err
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	anim, machine, _, err := loadAnimation(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("machine: %s\n", machine.Name)
	fmt.Printf("atoms: %d\n", anim.AtomCount())
	fmt.Printf("duration: %g %s\n", anim.Duration(), machine.Time.Unit)

	// Shuttling activity over the animation.
	const samples = 80
	activity := make([]float64, samples)
	for i := range activity {
		t := anim.Duration() * float64(i) / float64(samples-1)
		for _, a := range anim.State(t).Atoms {
			if a.Shuttle {
				activity[i]++
			}
		}
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(activity,
		asciigraph.Height(8),
		asciigraph.Width(samples),
		asciigraph.Caption("shuttling atoms over time"),
	))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	opts := importer.Options{IDPrefix: cfg.Import.IDPrefix, CZZone: cfg.Import.CZZone}
	converted, err := importer.MQTNASource(string(src), opts)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(converted)
		return nil
	}
	return os.WriteFile(output, []byte(converted), 0644)
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		err := validateFile(path)
		if err != nil {
			failed = true
			fmt.Printf("%s: %v\n", path, err)
		} else {
			fmt.Printf("%s: ok\n", path)
		}
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func validateFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".namachine":
		_, err = parser.ParseMachineConfig(string(src))
	case ".nastyle":
		_, err = parser.ParseVisualConfig(string(src))
	case ".naviz":
		_, err = parser.ParseInstructions(string(src))
	case ".na":
		_, err = importer.MQTNA(string(src), importer.Options{})
	default:
		err = fmt.Errorf("unknown file type %q", filepath.Ext(path))
	}
	return err
}

func writePNG(path string, c *render.RasterCanvas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.Image())
}

func listEntries(r *repository.Repository) error {
	entries, err := r.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSOURCE")
	for _, e := range entries {
		source := "user"
		if e.Bundled {
			source = "bundled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, source)
	}
	return w.Flush()
}

func importEntry(r *repository.Repository, path string) error {
	id, err := r.Import(path, "")
	if err != nil {
		return err
	}
	fmt.Printf("imported as %q into %s\n", id, r.UserDir())
	return nil
}
