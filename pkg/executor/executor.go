// Package executor implements the render executor: blocks, workers, and the
// Job that coordinates them over a single shared mutex and a pair of
// condition variable kinds hung off it (component K).
package executor

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// blockShuffleSeed fixes the block-submission order's RNG so shuffling
// stays reproducible across runs of the same block grid.
const blockShuffleSeed = 1

// SamplerKind selects which Sampler a block is rendered with.
type SamplerKind int

const (
	SamplerRandom SamplerKind = iota
	SamplerStratified
)

// Block is a rectangular region of the image plus a render configuration.
// Once rendered it also holds the block-local Film.
type Block struct {
	Xofs, Yofs, Width, Height int
	SPP                       int
	Sampler                   SamplerKind

	Film *film.Film
}

func newBlock(xofs, yofs, width, height, spp int, kind SamplerKind) *Block {
	return &Block{Xofs: xofs, Yofs: yofs, Width: width, Height: height, SPP: spp, Sampler: kind}
}

// NewBlockGrid tiles a width x height image into blocks of edgeLength,
// truncated at the image edges, then shuffles the block order (with a fixed
// RNG seed, so the order stays reproducible) so the image fills in out of
// raster order. Block geometry has no bearing on the per-pixel sample
// streams rendered within a block — see pixelSeed — so splitting the same
// image into blocks of a different size or submitting them in a different
// order never changes the rendered result.
func NewBlockGrid(width, height, edgeLength, spp int, kind SamplerKind) []*Block {
	var blocks []*Block
	blocksX := (width + edgeLength - 1) / edgeLength
	blocksY := (height + edgeLength - 1) / edgeLength

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			x0 := bx * edgeLength
			y0 := by * edgeLength
			w := min(edgeLength, width-x0)
			h := min(edgeLength, height-y0)
			blocks = append(blocks, newBlock(x0, y0, w, h, spp, kind))
		}
	}

	r := rand.New(rand.NewSource(blockShuffleSeed))
	r.Shuffle(len(blocks), func(i, j int) { blocks[i], blocks[j] = blocks[j], blocks[i] })
	return blocks
}

// pixelSeed derives a deterministic seed from a pixel's global image
// coordinates alone, per spec §5's resx*resy seed table: two renders of the
// same image produce bit-identical films regardless of worker count, block
// size, or scheduling order, since no block-specific quantity ever enters
// the per-pixel sample stream.
func pixelSeed(x, y int) int64 {
	h := uint64(x)*2654435761 + uint64(y)*40503 + 1
	return int64(h)
}

// buildSeeds precomputes the resx*resy seed table workers read by pixel
// index, row-major.
func buildSeeds(width, height int) []int64 {
	seeds := make([]int64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			seeds[y*width+x] = pixelSeed(x, y)
		}
	}
	return seeds
}

func samplerFor(kind SamplerKind) sampler.Sampler {
	if kind == SamplerStratified {
		return sampler.NewStratified()
	}
	return sampler.NewRandom()
}

// renderBlock fills b.Film by path tracing every pixel in the block against
// scn, returning a numeric-anomaly count. seeds is the job-wide resx*resy
// seed table, indexed by global pixel coordinates. When logger is non-nil
// the path tracer's per-bounce debug trace is enabled, per the CLI's -d
// flag.
func renderBlock(scn *scene.Scene, b *Block, width, height int, seeds []int64, logger core.Logger) (anomalies int64, err error) {
	smp := samplerFor(b.Sampler)
	pt := &integrator.PathTracer{Debug: logger != nil, Logger: logger}
	b.Film = film.NewFilm(b.Width, b.Height)

	for ly := 0; ly < b.Height; ly++ {
		gy := b.Yofs + ly
		for lx := 0; lx < b.Width; lx++ {
			gx := b.Xofs + lx
			seed := seeds[gy*width+gx]
			samples, genErr := smp.GenerateSamples(b.SPP, 4, seed)
			if genErr != nil {
				return anomalies, fmt.Errorf("block (%d,%d): %w", b.Xofs, b.Yofs, genErr)
			}

			for i := range samples {
				s := &samples[i]
				px := (float64(gx) + s.Randf()) / float64(width)
				py := (float64(gy) + s.Randf()) / float64(height)
				lu, lv := s.Randf(), s.Randf()

				ray := scn.Camera.GenerateRay(px, py, lu, lv)
				l := pt.Li(ray, scn, s)
				if l.HasAnomaly() {
					anomalies++
					l = core.Spectrum{}
				}
				b.Film.AddSample((float64(lx)+0.5)/float64(b.Width), (float64(ly)+0.5)/float64(b.Height), l)
			}
		}
	}
	return anomalies, nil
}

// workerState is the explicit per-worker state machine from spec §5:
// IDLE -> INPUT_READY -> WORKING -> IDLE, with QUIT reachable from any state.
type workerState int

const (
	stateIdle workerState = iota
	stateInputReady
	stateWorking
	stateQuit
)

// Worker runs one OS thread (goroutine), waiting for a Block, rendering it,
// and reporting back to its Job. All of a Worker's state lives under its
// Job's single shared mutex; cond is its private consumer-side condition
// variable sitting on that same mutex.
type Worker struct {
	job   *Job
	id    int
	cond  *sync.Cond
	state workerState
	block *Block
	done  chan struct{}
}

func newWorker(job *Job, id int) *Worker {
	return &Worker{job: job, id: id, cond: sync.NewCond(&job.mu), state: stateIdle, done: make(chan struct{})}
}

// run is the worker's goroutine body; it exits (closing done, so Finish can
// join it) once its state reaches QUIT.
func (w *Worker) run() {
	defer close(w.done)
	for {
		w.job.mu.Lock()
		for w.state != stateInputReady && w.state != stateQuit {
			w.cond.Wait()
		}
		if w.state == stateQuit {
			w.job.mu.Unlock()
			return
		}
		block := w.block
		w.state = stateWorking
		w.job.mu.Unlock()

		anomalies, err := renderBlock(w.job.scene, block, w.job.width, w.job.height, w.job.seeds, w.job.logger)

		w.job.mu.Lock()
		w.job.film.Merge(block.Film, block.Xofs, block.Yofs)
		w.job.anomalies += anomalies
		if err != nil && w.job.err == nil {
			w.job.err = err
		}
		w.state = stateIdle
		w.block = nil
		w.job.dispatchLocked()
		w.job.producer.Broadcast()
		cb := w.job.onBlock
		w.job.mu.Unlock()

		if cb != nil {
			cb(block)
		}
	}
}

// assign moves the worker from IDLE to INPUT_READY with the given block.
// Caller must hold job.mu.
func (w *Worker) assign(b *Block) {
	w.block = b
	w.state = stateInputReady
	w.cond.Signal()
}

func (w *Worker) quit() {
	w.job.mu.Lock()
	w.state = stateQuit
	w.job.mu.Unlock()
	w.cond.Signal()
}

// Job coordinates a fixed pool of Workers rendering a sequence of Blocks
// into a shared Film, per spec §5. A single mutex (mu) governs every
// worker's state transitions and every Film merge; producer is the
// producer-side condition variable workers wake when a block finishes.
type Job struct {
	scene         *scene.Scene
	width, height int

	mu       sync.Mutex
	producer *sync.Cond
	workers  []*Worker
	pending  []*Block
	onBlock  func(*Block)
	film     *film.Film
	seeds    []int64
	logger   core.Logger

	anomalies int64
	err       error
}

// NewJob creates a Job with numWorkers worker goroutines rendering into a
// width x height Film. numWorkers <= 0 selects runtime.NumCPU(). onBlock, if
// non-nil, is invoked once per completed block, outside the Job mutex (per
// spec §5, user callbacks run unlocked).
func NewJob(scn *scene.Scene, width, height, numWorkers int, onBlock func(*Block)) *Job {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	j := &Job{
		scene:   scn,
		width:   width,
		height:  height,
		film:    film.NewFilm(width, height),
		seeds:   buildSeeds(width, height),
		onBlock: onBlock,
	}
	j.producer = sync.NewCond(&j.mu)
	j.workers = make([]*Worker, numWorkers)
	for i := range j.workers {
		j.workers[i] = newWorker(j, i)
		go j.workers[i].run()
	}
	return j
}

// Film returns a copy of the job's film as it stands right now, including
// any partial progress from blocks merged so far. Safe to call concurrently
// with rendering; intended for periodic preview publication from an
// onBlock callback.
func (j *Job) Film() *film.Film {
	j.mu.Lock()
	defer j.mu.Unlock()
	snapshot := film.NewFilm(j.film.Width, j.film.Height)
	copy(snapshot.Pixels, j.film.Pixels)
	return snapshot
}

// SetLogger enables per-bounce debug tracing for every block rendered after
// this call, per the CLI's -d flag. Must be called before Submit.
func (j *Job) SetLogger(l core.Logger) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.logger = l
}

// Submit enqueues blocks for rendering, immediately assigning them to any
// free workers; blocks beyond the number of free workers wait in the
// pending queue until a worker reports idle again.
func (j *Job) Submit(blocks []*Block) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending = append(j.pending, blocks...)
	j.dispatchLocked()
}

// dispatchLocked assigns pending blocks to idle workers. Caller must hold
// j.mu.
func (j *Job) dispatchLocked() {
	for len(j.pending) > 0 {
		w := j.freeWorkerLocked()
		if w == nil {
			return
		}
		b := j.pending[0]
		j.pending = j.pending[1:]
		w.assign(b)
	}
}

func (j *Job) freeWorkerLocked() *Worker {
	for _, w := range j.workers {
		if w.state == stateIdle {
			return w
		}
	}
	return nil
}

func (j *Job) allIdleLocked() bool {
	for _, w := range j.workers {
		if w.state != stateIdle {
			return false
		}
	}
	return true
}

// Finish blocks until every submitted block has been rendered and merged,
// then shuts every worker down via QUIT and joins its goroutine before
// returning. It returns the completed Film, the total numeric-anomaly
// count, and the job's first observed error, if any.
func (j *Job) Finish() (*film.Film, int64, error) {
	j.mu.Lock()
	for len(j.pending) > 0 || !j.allIdleLocked() {
		j.producer.Wait()
	}
	err := j.err
	anomalies := j.anomalies
	j.mu.Unlock()

	for _, w := range j.workers {
		w.quit()
		<-w.done
	}

	return j.film, anomalies, err
}
