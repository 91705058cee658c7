package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/df07/go-sdf-raytracer/pkg/renderer"
)

// consoleBuffer bounds the console messages queued between SSE writes
const consoleBuffer = 50

// RowUpdate is sent via SSE each time an image row completes
type RowUpdate struct {
	Y         int    `json:"y"`
	Completed int    `json:"completed"` // Rows finished so far
	TotalRows int    `json:"totalRows"`
	ImageData string `json:"imageData"` // Base64 encoded PNG of just this row
}

// CompleteUpdate is the final SSE event of a render
type CompleteUpdate struct {
	RenderID       string `json:"renderId"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ElapsedMs      int64  `json:"elapsedMs"`
	TotalPixels    int    `json:"totalPixels"`
	TotalSamples   int    `json:"totalSamples"`
	PrimitiveCount int    `json:"primitiveCount"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG of the whole image
}

// handleRender renders a scene and streams rows, console output and the
// final image via SSE. All events are written from the handler goroutine.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.loadScene(req)
	if err != nil {
		sendSSEEvent(w, "error", err.Error())
		return
	}

	renderID := NewRenderID()
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	logger := NewWebLogger(renderID, consoleChan)

	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height, renderer.RenderConfig{
		NumWorkers: req.Workers,
		Seed:       req.Seed,
	}, logger)
	logger.Printf("Rendering %s at %dx%d, %d samples, %d bounces, %d objects\n",
		req.Scene, req.Width, req.Height, sceneObj.SampleCount, sceneObj.MaxBounces, sceneObj.GetPrimitiveCount())

	ctx := r.Context()
	img := renderer.NewImage(req.Width, req.Height)
	startTime := time.Now()
	completed := 0

	// A started render runs to completion even if the client leaves; the row
	// channel holds every row so the producer never waits on us.
	rows := raytracer.Render()
	for rows != nil {
		select {
		case row, ok := <-rows:
			if !ok {
				rows = nil
				continue
			}
			renderer.SetRow(img, row)
			completed++
			if err := sendRowUpdate(w, img, row.Y, completed, req.Height); err != nil {
				return
			}

		case msg := <-consoleChan:
			if err := sendConsoleMessage(w, msg); err != nil {
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}

	elapsed := time.Since(startTime)
	logger.Printf("Render completed in %v\n", elapsed)
	drainConsole(w, consoleChan)

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		RenderID:       renderID,
		Width:          req.Width,
		Height:         req.Height,
		ElapsedMs:      elapsed.Milliseconds(),
		TotalPixels:    req.Width * req.Height,
		TotalSamples:   req.Width * req.Height * sceneObj.SampleCount,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		ImageData:      imageData,
	})
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode result: %v", err))
		return
	}
	sendSSEEvent(w, "complete", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// sendRowUpdate sends the finished row y of img
func sendRowUpdate(w http.ResponseWriter, img *image.RGBA, y, completed, total int) error {
	bounds := img.Bounds()
	rowImage := img.SubImage(image.Rect(bounds.Min.X, y, bounds.Max.X, y+1)).(*image.RGBA)
	rowData, err := imageToBase64PNG(rowImage)
	if err != nil {
		return err
	}

	data, err := json.Marshal(RowUpdate{
		Y:         y,
		Completed: completed,
		TotalRows: total,
		ImageData: rowData,
	})
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "row", string(data))
}

func sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "console", string(data))
}

// drainConsole sends every console message still queued
func drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := sendConsoleMessage(w, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := renderer.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEEvent writes one SSE event and flushes it to the client. Each line
// of data gets its own data field.
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&buf, "data: %s\n", line)
	}
	buf.WriteString("\n")

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
