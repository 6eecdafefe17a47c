// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

const (
	DefaultDirPerm  = 0755
	DefaultFilePerm = 0644
)

// XZSuffix marks files that WriteFile/ReadFile transparently (de)compress.
const XZSuffix = ".xz"

// IsExist returns true if the file name exists.
func IsExist(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func MkdirAll(dir string) error {
	return os.MkdirAll(dir, DefaultDirPerm)
}

// WriteFile writes data to filename creating the parent directory if necessary.
// Files with XZSuffix are xz-compressed.
func WriteFile(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create dir %v: %w", dir, err)
		}
	}
	if strings.HasSuffix(filename, XZSuffix) {
		compressed, err := Compress(data)
		if err != nil {
			return fmt.Errorf("failed to compress %v: %w", filename, err)
		}
		data = compressed
	}
	return os.WriteFile(filename, data, DefaultFilePerm)
}

// ReadFile is the counterpart of WriteFile.
func ReadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil || !strings.HasSuffix(filename, XZSuffix) {
		return data, err
	}
	data, err = Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %v: %w", filename, err)
	}
	return data, nil
}

func Compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

var wd string

func init() {
	var err error
	wd, err = os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("failed to get wd: %v", err))
	}
}

func Abs(path string) string {
	if wd1, err := os.Getwd(); err == nil && wd1 != wd {
		panic("don't mess with wd in a concurrent program")
	}
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(wd, path)
}
