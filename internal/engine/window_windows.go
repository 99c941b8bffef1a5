//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_CAPTION_COLOR = 35
	DWMWA_BORDER_COLOR  = 34
)

// tintTitleBar paints the caption and border in the scene clear color.
func tintTitleBar(window *glfw.Window, color mgl32.Vec3) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	colorBGR := uint32(uint8(color.Z()*255))<<16 | uint32(uint8(color.Y()*255))<<8 | uint32(uint8(color.X()*255))
	procDwmSetWindowAttribute.Call(
		uintptr(unsafe.Pointer(hwnd)),
		DWMWA_BORDER_COLOR,
		uintptr(unsafe.Pointer(&colorBGR)),
		unsafe.Sizeof(colorBGR),
	)
	procDwmSetWindowAttribute.Call(
		uintptr(unsafe.Pointer(hwnd)),
		DWMWA_CAPTION_COLOR,
		uintptr(unsafe.Pointer(&colorBGR)),
		unsafe.Sizeof(colorBGR),
	)
}
