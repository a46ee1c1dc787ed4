package libgl

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type shaderCacheManager struct {
	hasher hash.Hash

	// Dir holds one file per program binary, named by the source hash.
	Dir string

	Disabled bool

	// Entries older than MaxAge are dropped, the driver might produce different code by now.
	MaxAge time.Duration

	// Driver identifies the GL implementation, it is part of every key.
	Driver string
}

var ShaderCache = NewShaderCache(".shadercache")

// DriverString describes the current context, for use as the cache Driver.
func DriverString() string {
	return gl.GoStr(gl.GetString(gl.VENDOR)) + "\n" + gl.GoStr(gl.GetString(gl.RENDERER)) + "\n" + gl.GoStr(gl.GetString(gl.VERSION))
}

func NewShaderCache(dir string) *shaderCacheManager {
	return &shaderCacheManager{
		hasher: md5.New(),
		Dir:    dir,
		MaxAge: 30 * 24 * time.Hour,
	}
}

// Key hashes the final source together with the driver identification.
func (cache *shaderCacheManager) Key(source string) string {
	cache.hasher.Reset()
	cache.hasher.Write([]byte(source))
	cache.hasher.Write([]byte(cache.Driver))
	return fmt.Sprintf("%x", cache.hasher.Sum(nil))
}

func (cache *shaderCacheManager) path(key string) string {
	return filepath.Join(cache.Dir, key+".bin")
}

func (cache *shaderCacheManager) Put(source string, program ShaderProgram) {
	if cache.Disabled {
		return
	}
	var length int32
	gl.GetProgramiv(program.Id(), gl.PROGRAM_BINARY_LENGTH, &length)
	if length == 0 {
		return
	}
	buf := make([]byte, length)
	var format uint32
	gl.GetProgramBinary(program.Id(), length, &length, &format, Pointer(buf))
	if err := cache.store(cache.Key(source), format, buf[:length]); err != nil {
		log.Printf("Could not write shader cache: %v\n", err)
	}
}

func (cache *shaderCacheManager) Get(source string) (ok bool, buf []byte, format uint32) {
	if cache.Disabled {
		return
	}
	ok, buf, format, err := cache.load(cache.Key(source))
	if err != nil {
		log.Printf("Could not read shader cache: %v\n", err)
		return false, nil, 0
	}
	return
}

func (cache *shaderCacheManager) Remove(source string) {
	os.Remove(cache.path(cache.Key(source)))
}

func (cache *shaderCacheManager) store(key string, format uint32, buf []byte) (err error) {
	if err = os.MkdirAll(cache.Dir, 0755); err != nil {
		return err
	}
	file, err := os.OpenFile(cache.path(key), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err = binary.Write(file, binary.LittleEndian, format); err != nil {
		return err
	}
	_, err = file.Write(buf)
	return err
}

// load reports a miss without an error when there is no usable entry.
func (cache *shaderCacheManager) load(key string) (ok bool, buf []byte, format uint32, err error) {
	shaderPath := cache.path(key)
	info, err := os.Stat(shaderPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil, 0, nil
	}
	if err != nil {
		return false, nil, 0, err
	}
	if cache.MaxAge > 0 && time.Since(info.ModTime()) > cache.MaxAge {
		return false, nil, 0, os.Remove(shaderPath)
	}
	file, err := os.Open(shaderPath)
	if err != nil {
		return false, nil, 0, err
	}
	defer file.Close()
	if err = binary.Read(file, binary.LittleEndian, &format); err != nil {
		return false, nil, 0, fmt.Errorf("%v: %w", shaderPath, err)
	}
	buf, err = io.ReadAll(file)
	if err != nil {
		return false, nil, 0, err
	}
	if len(buf) == 0 {
		return false, nil, 0, nil
	}
	return true, buf, format, nil
}
