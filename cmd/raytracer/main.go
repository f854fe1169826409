// Command raytracer is the CLI entry point: parses the render-job flags,
// builds a scene, runs the executor, and writes the configured output
// formats.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/internal/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/executor"
	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliConfig holds the parsed render-job flags. The -r and -S flags each
// take two values, which the standard flag package cannot express
// directly, so argument parsing is hand-rolled here rather than via
// flag.FlagSet.
type cliConfig struct {
	job config.Job

	singleBlock    bool
	blockX, blockY int

	debug bool

	scenePath string
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := core.StdoutLogger{}

	if cfg.scenePath != "" {
		logger.Printf("scene description files are not supported by this build; using the built-in default scene instead of %s\n", cfg.scenePath)
	}

	s := scene.NewDefault(float64(cfg.job.Width) / float64(cfg.job.Height))
	samplerKind := executor.SamplerRandom
	if cfg.job.SamplerKind == "stratified" {
		samplerKind = executor.SamplerStratified
	}

	start := time.Now()

	if cfg.singleBlock {
		if err := renderSingleBlock(s, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var completed int
	var job *executor.Job
	job = executor.NewJob(s, cfg.job.Width, cfg.job.Height, cfg.job.Workers, func(*executor.Block) {
		completed++
		if completed%previewEveryNBlocks != 0 {
			return
		}
		if err := publishPreview(job, cfg.job.Output); err != nil {
			logger.Printf("preview: %v\n", err)
		}
	})
	if cfg.debug {
		job.SetLogger(logger)
	}
	blocks := executor.NewBlockGrid(cfg.job.Width, cfg.job.Height, cfg.job.BlockSize, cfg.job.SPP, samplerKind)
	job.Submit(blocks)

	f, anomalies, err := job.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("rendered %dx%d in %v, %d numeric anomalies\n", cfg.job.Width, cfg.job.Height, time.Since(start), anomalies)

	if err := writeOutputs(f, cfg.job.Output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// previewEveryNBlocks controls how often a completed block triggers a
// preview publication; publishing after every single block would
// dominate render time on small block sizes.
const previewEveryNBlocks = 8

func publishPreview(job *executor.Job, basename string) error {
	f := job.Film()
	if err := imageio.SavePNG(f, basename+".preview.png"); err != nil {
		return err
	}
	return imageio.SaveWebPPreview(f, basename+".preview.webp")
}

func writeOutputs(f *film.Film, basename string) error {
	if err := imageio.SavePNG(f, basename+".png"); err != nil {
		return err
	}
	if err := imageio.SaveHDR(f, basename+".hdr"); err != nil {
		return err
	}
	return imageio.SaveFloat(f, basename+".float")
}

func renderSingleBlock(s *scene.Scene, cfg cliConfig, logger core.Logger) error {
	samplerKind := executor.SamplerRandom
	if cfg.job.SamplerKind == "stratified" {
		samplerKind = executor.SamplerStratified
	}
	blocks := executor.NewBlockGrid(cfg.job.Width, cfg.job.Height, cfg.job.BlockSize, cfg.job.SPP, samplerKind)
	for _, b := range blocks {
		bx := b.Xofs / cfg.job.BlockSize
		by := b.Yofs / cfg.job.BlockSize
		if bx != cfg.blockX || by != cfg.blockY {
			continue
		}
		job := executor.NewJob(s, cfg.job.Width, cfg.job.Height, 1, nil)
		if cfg.debug {
			job.SetLogger(logger)
		}
		job.Submit([]*executor.Block{b})
		f, anomalies, err := job.Finish()
		if err != nil {
			return err
		}
		logger.Printf("rendered single block (%d,%d), %d numeric anomalies\n", cfg.blockX, cfg.blockY, anomalies)
		return writeOutputs(f, cfg.job.Output)
	}
	return fmt.Errorf("no block at (%d,%d) for block size %d", cfg.blockX, cfg.blockY, cfg.job.BlockSize)
}

func parseArgs(args []string) (cliConfig, error) {
	cfg := cliConfig{job: config.Default()}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-r":
			w, h, n, err := twoInts(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-r: %w", err)
			}
			cfg.job.Width, cfg.job.Height = w, h
			i += n
		case "-s":
			n, nargs, err := oneInt(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-s: %w", err)
			}
			cfg.job.SPP = n
			i += nargs
		case "-o":
			v, nargs, err := oneString(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-o: %w", err)
			}
			cfg.job.Output = v
			i += nargs
		case "-m":
			n, nargs, err := oneInt(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-m: %w", err)
			}
			cfg.job.Workers = n
			i += nargs
		case "-b":
			n, nargs, err := oneInt(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-b: %w", err)
			}
			cfg.job.BlockSize = n
			i += nargs
		case "-S":
			x, y, n, err := twoInts(args, i)
			if err != nil {
				return cfg, fmt.Errorf("-S: %w", err)
			}
			cfg.singleBlock = true
			cfg.blockX, cfg.blockY = x, y
			i += n
		case "--sampler":
			v, nargs, err := oneString(args, i)
			if err != nil {
				return cfg, fmt.Errorf("--sampler: %w", err)
			}
			if v != "random" && v != "stratified" {
				return cfg, fmt.Errorf("--sampler: unknown sampler %q", v)
			}
			cfg.job.SamplerKind = v
			i += nargs
		case "-d":
			cfg.debug = true
		default:
			if len(args[i]) > 0 && args[i][0] == '-' {
				return cfg, fmt.Errorf("unknown flag %q", args[i])
			}
			cfg.scenePath = args[i]
		}
	}

	if cfg.job.SamplerKind == "stratified" {
		d := int(isqrt(cfg.job.SPP))
		if d*d != cfg.job.SPP {
			return cfg, fmt.Errorf("-s %d: stratified sampler requires a perfect-square samples-per-pixel count", cfg.job.SPP)
		}
	}
	return cfg, nil
}

func isqrt(n int) int {
	r := 0
	for r*r <= n {
		r++
	}
	return r - 1
}

func twoInts(args []string, i int) (a, b, consumed int, err error) {
	if i+2 >= len(args) {
		return 0, 0, 0, fmt.Errorf("expected two integer arguments")
	}
	a, err1 := strconv.Atoi(args[i+1])
	b, err2 := strconv.Atoi(args[i+2])
	if err1 != nil || err2 != nil {
		return 0, 0, 0, fmt.Errorf("expected two integer arguments, got %q %q", args[i+1], args[i+2])
	}
	return a, b, 2, nil
}

func oneInt(args []string, i int) (v, consumed int, err error) {
	if i+1 >= len(args) {
		return 0, 0, fmt.Errorf("expected an integer argument")
	}
	v, err = strconv.Atoi(args[i+1])
	if err != nil {
		return 0, 0, fmt.Errorf("expected an integer argument, got %q", args[i+1])
	}
	return v, 1, nil
}

func oneString(args []string, i int) (v string, consumed int, err error) {
	if i+1 >= len(args) {
		return "", 0, fmt.Errorf("expected an argument")
	}
	return args[i+1], 1, nil
}
