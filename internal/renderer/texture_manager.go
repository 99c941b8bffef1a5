package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

var ErrNoImage = errors.New("texture has no image data")

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalUploads   int
	ActiveTextures int
	SamplerUpdates int
	TotalMemoryMB  float64
}

// TextureManager owns the GPU side of textures: upload, sampler updates and
// reference-counted release.
type TextureManager struct {
	refCount map[uint32]int      // texture ID -> reference count
	owners   map[uint32]*Texture // texture ID -> texture (for debugging and Clear)
	mu       sync.RWMutex
	stats    TextureStats
}

// NewTextureManager creates a new texture manager instance
func NewTextureManager() *TextureManager {
	return &TextureManager{
		refCount: make(map[uint32]int),
		owners:   make(map[uint32]*Texture),
	}
}

// Acquire uploads tex if it has no GPU object yet, otherwise increments its
// reference count. Pending sampler changes are applied either way.
func (tm *TextureManager) Acquire(tex *Texture) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tex.Uploaded() {
		if _, ok := tm.refCount[tex.ID]; ok {
			tm.refCount[tex.ID]++
			if tex.samplerDirty {
				gl.BindTexture(gl.TEXTURE_2D, tex.ID)
				tex.applySampler()
				tm.stats.SamplerUpdates++
			}
			return nil
		}
	}

	if tex.Image == nil {
		return fmt.Errorf("upload %q: %w", tex.Name, ErrNoImage)
	}

	pixels := tex.Image
	if tex.FlipY {
		pixels = flipRows(pixels)
	}
	w, h := tex.Size()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pix))
	tex.applySampler()

	tex.ID = id
	tm.refCount[id] = 1
	tm.owners[id] = tex
	tm.stats.TotalUploads++
	tm.stats.ActiveTextures++
	tm.stats.TotalMemoryMB += float64(w*h*4) / (1024 * 1024)

	logger.Log.Info("Texture uploaded",
		zap.String("name", tex.Name),
		zap.Uint32("textureID", id),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Stringer("wrapS", tex.WrapS),
		zap.Stringer("wrapT", tex.WrapT))

	return nil
}

// Bind binds tex to the given texture unit, refreshing sampler state when it
// changed since the last bind.
func (tm *TextureManager) Bind(tex *Texture, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	if tex.samplerDirty {
		tex.applySampler()
		tm.mu.Lock()
		tm.stats.SamplerUpdates++
		tm.mu.Unlock()
	}
}

// Release decrements the reference count and frees the GPU object when it
// reaches zero.
func (tm *TextureManager) Release(tex *Texture) {
	if tex == nil || !tex.Uploaded() {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tex.ID
	refCount, exists := tm.refCount[id]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.String("name", tex.Name),
			zap.Uint32("textureID", id))
		return
	}

	refCount--
	tm.refCount[id] = refCount
	if refCount > 0 {
		return
	}

	gl.DeleteTextures(1, &id)
	tm.forget(id)
	logger.Log.Info("Texture freed", zap.String("name", tex.Name), zap.Uint32("textureID", id))
}

func (tm *TextureManager) forget(id uint32) {
	if owner, ok := tm.owners[id]; ok {
		owner.ID = 0
		w, h := owner.Size()
		tm.stats.TotalMemoryMB -= float64(w*h*4) / (1024 * 1024)
	}
	delete(tm.refCount, id)
	delete(tm.owners, id)
	tm.stats.ActiveTextures--
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.refCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalUploads", stats.TotalUploads),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("samplerUpdates", stats.SamplerUpdates),
		zap.Float64("memoryMB", stats.TotalMemoryMB))
}

// Clear frees every texture regardless of reference count.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for id := range tm.refCount {
		id := id
		gl.DeleteTextures(1, &id)
		tm.forget(id)
	}

	logger.Log.Info("Texture manager cleared")
}
