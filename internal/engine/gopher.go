package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/frankievx/watercolor-rose/internal/config"
	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/frankievx/watercolor-rose/internal/watercolor"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var ErrWindow = errors.New("window creation failed")

var statsInterval = 30 * time.Second

// Gopher owns the window, the GL context and the frame loop for one
// composed scene.
type Gopher struct {
	Width   int32
	Height  int32
	Title   string
	X, Y    int
	Samples int

	rendererAPI renderer.Render
	window      *glfw.Window
	composer    *watercolor.Composer
	pointer     pointer

	EnableCameraInput bool
}

func NewGopher(cfg config.WindowConfig) *Gopher {
	return &Gopher{
		Width:             cfg.Width,
		Height:            cfg.Height,
		Title:             cfg.Title,
		X:                 cfg.X,
		Y:                 cfg.Y,
		Samples:           cfg.Samples,
		rendererAPI:       renderer.NewOpenGLRenderer(),
		EnableCameraInput: true,
	}
}

// Run opens the window and renders composer until the window closes or ctx
// is cancelled. It must be called from the main goroutine.
func (gopher *Gopher) Run(ctx context.Context, composer *watercolor.Composer) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	gopher.composer = composer

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Samples, gopher.Samples)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWindow, err)
	}
	defer window.Destroy()
	gopher.window = window
	window.SetPos(gopher.X, gopher.Y)
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	tintTitleBar(window, composer.Scene.ClearColor)

	// Framebuffer size differs from window size on high-DPI displays.
	fbWidth, fbHeight := window.GetFramebufferSize()
	if err := gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight)); err != nil {
		return err
	}
	defer gopher.rendererAPI.Cleanup()
	defer composer.Unmount()

	composer.Resize(int32(fbWidth), int32(fbHeight))
	if err := gopher.rendererAPI.Prepare(composer.Scene); err != nil {
		return fmt.Errorf("prepare scene: %w", err)
	}

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetCursorPosCallback(gopher.mouseCallback)
	window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	window.SetScrollCallback(gopher.scrollCallback)
	window.SetFramebufferSizeCallback(gopher.framebufferSizeCallback)

	logger.Log.Info("Render loop starting",
		zap.Int("framebuffer_width", fbWidth),
		zap.Int("framebuffer_height", fbHeight))
	gopher.RenderLoop(ctx)
	return nil
}

func (gopher *Gopher) RenderLoop(ctx context.Context) {
	lastTime := glfw.GetTime()
	lastStats := time.Now()

	for !gopher.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("Render loop cancelled")
			return
		}
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		gopher.composer.Tick(deltaTime)
		gopher.rendererAPI.Render(gopher.composer.Scene, gopher.composer.Camera)

		gopher.window.SwapBuffers()
		glfw.PollEvents()

		if ogl, ok := gopher.rendererAPI.(*renderer.OpenGLRenderer); ok && time.Since(lastStats) > statsInterval {
			ogl.Textures().LogStats()
			lastStats = time.Now()
		}
	}
}

func (gopher *Gopher) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// Minimized.
		return
	}
	gopher.Width, gopher.Height = int32(width), int32(height)
	gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
	gopher.composer.Resize(gopher.Width, gopher.Height)
}

func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		gopher.pointer.release()
		return
	}
	if !gopher.EnableCameraInput || action != glfw.Press {
		return
	}
	x, y := w.GetCursorPos()
	switch {
	case button == glfw.MouseButtonLeft && mods&glfw.ModShift != 0, button == glfw.MouseButtonRight:
		gopher.pointer.press(dragPan, x, y)
	case button == glfw.MouseButtonLeft:
		gopher.pointer.press(dragRotate, x, y)
	}
}

func (gopher *Gopher) mouseCallback(_ *glfw.Window, xpos, ypos float64) {
	if !gopher.EnableCameraInput {
		return
	}
	mode, dx, dy := gopher.pointer.move(xpos, ypos)
	controls := gopher.composer.Controls
	_, height := gopher.window.GetSize()
	switch mode {
	case dragRotate:
		controls.Rotate(dx, dy, float32(height))
	case dragPan:
		controls.Pan(dx, dy, float32(height))
	}
}

func (gopher *Gopher) scrollCallback(_ *glfw.Window, _, yoff float64) {
	if !gopher.EnableCameraInput {
		return
	}
	gopher.composer.Controls.Zoom(float32(yoff))
}
