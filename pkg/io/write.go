package io

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"

	"github.com/matzehuels/macrofor/pkg/errors"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// WriteFile encodes text with enc and atomically replaces path with it.
func WriteFile(ctx context.Context, path, text string, enc encoding.Encoding) error {
	data, err := Encode(text, enc)
	if err != nil {
		return err
	}
	return WriteBytes(ctx, path, data)
}

// WriteBytes atomically replaces path with data, creating parent
// directories as needed.
func WriteBytes(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.WritePath(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.WritePath(path, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return errors.WritePath(path, err)
	}
	return nil
}

func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".macrofor-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, filePerm)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriter(tmp)
	if _, err := bw.Write(data); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = syncDir(dir)
	return nil
}
