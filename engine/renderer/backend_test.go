package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

// recordingBackend is a RendererBackend that keeps every call in memory.
type recordingBackend struct {
	calls []string

	live         map[*metadata.RenderBuffer]bool
	created      []*metadata.RenderBuffer
	pipelines    map[*metadata.Pipeline]bool
	lastUpload   []byte
	draws        []uint32
	vbSizes      []uint64
	unavailable  bool
	failPipeline bool
	format       metadata.TextureFormat
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		live:      map[*metadata.RenderBuffer]bool{},
		pipelines: map[*metadata.Pipeline]bool{},
		format:    23,
	}
}

func (b *recordingBackend) record(format string, args ...interface{}) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *recordingBackend) Shutdown() error                    { return nil }
func (b *recordingBackend) Resized(width, height uint32) error { return nil }
func (b *recordingBackend) SurfaceFormat() metadata.TextureFormat {
	return b.format
}

func (b *recordingBackend) PipelineCreate(config metadata.PipelineConfig) (*metadata.Pipeline, error) {
	if b.failPipeline {
		return nil, errors.New("compile error")
	}
	p := metadata.NewPipeline(config)
	p.State = metadata.PIPELINE_STATE_READY
	b.pipelines[p] = true
	b.record("pipeline.create")
	return p, nil
}

func (b *recordingBackend) PipelineDestroy(pipeline *metadata.Pipeline) {
	delete(b.pipelines, pipeline)
	pipeline.State = metadata.PIPELINE_STATE_RELEASED
	b.record("pipeline.destroy")
}

func (b *recordingBackend) RenderBufferCreate(t metadata.RenderBufferType, totalSize uint64) (*metadata.RenderBuffer, error) {
	buf := metadata.NewRenderBuffer(t, totalSize)
	b.live[buf] = true
	b.created = append(b.created, buf)
	b.record("buffer.create %d", totalSize)
	return buf, nil
}

func (b *recordingBackend) RenderBufferDestroy(buffer *metadata.RenderBuffer) {
	delete(b.live, buffer)
	b.record("buffer.destroy %d", buffer.TotalSize)
}

func (b *recordingBackend) RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > buffer.TotalSize {
		return errors.New("overflow")
	}
	b.lastUpload = append(b.lastUpload[:0], data...)
	b.record("buffer.load %d", len(data))
	return nil
}

func (b *recordingBackend) FrameAcquire() metadata.FrameTarget {
	if b.unavailable {
		return metadata.SurfaceUnavailable{Reason: "minimized"}
	}
	b.record("frame.acquire")
	return &metadata.FrameReady{Width: 1280, Height: 720}
}

func (b *recordingBackend) FrameRelease(target *metadata.FrameReady) { b.record("frame.release") }
func (b *recordingBackend) FramePresent()                            { b.record("frame.present") }
func (b *recordingBackend) Poll()                                    { b.record("poll") }

func (b *recordingBackend) RenderPassBegin(pass *metadata.RenderPass) error {
	b.record("pass.begin")
	return nil
}

func (b *recordingBackend) RenderPassSetPipeline(pass *metadata.RenderPass, pipeline *metadata.Pipeline) {
	b.record("pass.pipeline")
}

func (b *recordingBackend) RenderPassSetVertexBuffer(pass *metadata.RenderPass, slot uint32, buffer *metadata.RenderBuffer, offset, size uint64) {
	b.vbSizes = append(b.vbSizes, size)
	b.record("pass.vertexbuffer")
}

func (b *recordingBackend) RenderPassDraw(pass *metadata.RenderPass, vertexCount, instanceCount uint32) {
	b.draws = append(b.draws, vertexCount)
	b.record("pass.draw %d", vertexCount)
}

func (b *recordingBackend) RenderPassEnd(pass *metadata.RenderPass) error {
	b.record("pass.end")
	return nil
}

func (b *recordingBackend) RenderPassSubmit(pass *metadata.RenderPass) error {
	b.record("pass.submit")
	return nil
}

type recordingOverlay struct {
	backend   *recordingBackend
	discarded int
	recorded  int
}

func (o *recordingOverlay) Discard() { o.discarded++ }

func (o *recordingOverlay) Record(pass *metadata.RenderPass) error {
	o.recorded++
	o.backend.record("overlay.record")
	return nil
}
