// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compress

import (
	"compress/zlib"
	"io"
)

// MethodZlib is the XEP-0138 zlib method name.
const MethodZlib = "zlib"

type zlibCompressor struct {
	level int
	r     io.Reader
	w     io.Writer
	zr    io.ReadCloser
	zw    *zlib.Writer
}

// NewZlibCompressor returns a zlib compressor wrapping reader and writer.
// Every write is sync flushed so that the peer can inflate each stanza as soon as it arrives.
func NewZlibCompressor(reader io.Reader, writer io.Writer, level Level) Compressor {
	z := &zlibCompressor{
		r: reader,
		w: writer,
	}
	switch level {
	case DefaultCompression:
		z.level = zlib.DefaultCompression
	case BestCompression:
		z.level = zlib.BestCompression
	case SpeedCompression:
		z.level = zlib.BestSpeed
	default:
		z.level = int(level)
	}
	return z
}

func (z *zlibCompressor) Write(p []byte) (int, error) {
	if z.zw == nil {
		zw, err := zlib.NewWriterLevel(z.w, z.level)
		if err != nil {
			return 0, err
		}
		z.zw = zw
	}
	n, err := z.zw.Write(p)
	if err != nil {
		return n, err
	}
	return n, z.zw.Flush()
}

func (z *zlibCompressor) Read(p []byte) (int, error) {
	if z.zr == nil {
		zr, err := zlib.NewReader(z.r)
		if err != nil {
			return 0, err
		}
		z.zr = zr
	}
	return z.zr.Read(p)
}
