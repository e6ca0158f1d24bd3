package mapscreator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultJobs is the number of textures packed concurrently by Scan
const DefaultJobs = 4

// ScanOptions controls a directory scan.
type ScanOptions struct {
	// Jobs is the number of textures packed concurrently
	Jobs int
	// Cache, if set, is used to skip textures whose sources haven't changed
	Cache *Cache
	// Force packs every texture regardless of the cache
	Force bool
}

// textureName returns the texture a source file belongs to, if any
func (m *MapsCreator) textureName(file string) (string, bool) {
	ext := filepath.Ext(file)
	if strings.TrimPrefix(ext, ".") != m.opts.Extension {
		return "", false
	}
	stem := strings.TrimSuffix(file, ext)
	for _, c := range m.registry.channels {
		if suffix := "_" + c.Name; strings.HasSuffix(stem, suffix) && len(filepath.Base(stem)) > len(suffix) {
			return strings.TrimSuffix(stem, suffix), true
		}
	}
	return "", false
}

func (m *MapsCreator) findTextures(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		seen := make(map[string]struct{})
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			name, ok := m.textureName(file)
			if !ok {
				return nil
			}
			if _, ok := seen[name]; ok {
				return nil
			}
			seen[name] = struct{}{}

			select {
			case out <- name:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *MapsCreator) packWorker(ctx context.Context, in <-chan string, opts ScanOptions) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for name := range in {
			if err := m.packCached(name, opts); err != nil {
				errc <- fmt.Errorf("%s: %w", name, err)
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc, nil
}

func (m *MapsCreator) packCached(name string, opts ScanOptions) error {
	if opts.Cache == nil {
		_, err := m.Pack(name)
		return err
	}

	crc, err := m.SourceCRC(name)
	if err != nil {
		return err
	}

	if !opts.Force {
		r, err := opts.Cache.Lookup(name)
		if err != nil {
			return err
		}
		if r != nil && r.CRC == crc && outputsExist(r) {
			m.logger.Info("sources unchanged, skipping", "texture", name)
			return nil
		}
	}

	result, err := m.Pack(name)
	if err != nil {
		if ferr := opts.Cache.Forget(name); ferr != nil {
			m.logger.Warn("unable to forget texture", "texture", name, "error", ferr)
		}
		return err
	}

	return opts.Cache.Store(crc, result)
}

// outputsExist reports whether the descriptor and every map recorded for a
// texture are still on disk
func outputsExist(r *Record) bool {
	if !fileExists(DescriptorFile(r.Name)) {
		return false
	}
	for _, i := range r.Written.Maps() {
		if !fileExists(MapFile(r.Name, i)) {
			return false
		}
	}
	return true
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and packs every texture with at least one source image.
func (m *MapsCreator) Scan(ctx context.Context, path string, opts ScanOptions) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if opts.Jobs < 1 {
		opts.Jobs = DefaultJobs
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	names, errc, err := m.findTextures(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < opts.Jobs; i++ {
		errc, err := m.packWorker(ctx, names, opts)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
