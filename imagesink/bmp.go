// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package imagesink writes a rendered swrast.Image out to a wire format.
// The only concrete Sink here is BMPSink; callers needing another format
// implement Sink directly.
package imagesink

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"swrast"
)

// Sink writes a rendered image to w in some wire format.
type Sink interface {
	Write(ctx context.Context, w io.Writer, img *swrast.Image) error
}

// BMPSink writes a 24-bit uncompressed Windows BMP: file header, then
// info header, then pixel rows bottom-to-top (BMP's native origin is
// bottom-left), each row padded to a 4-byte multiple.
type BMPSink struct{}

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Write encodes img as a BMP and writes it to w: one Write call for the
// headers, then one per row. ctx is checked once, before encoding
// begins, and not between those writes; it is accepted so callers can
// cancel a queued encode without this type needing its own goroutine.
func (BMPSink) Write(ctx context.Context, w io.Writer, img *swrast.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("imagesink.BMPSink.Write: nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("imagesink.BMPSink.Write: invalid image dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Pixels) != img.Width*img.Height*3 {
		return fmt.Errorf("imagesink.BMPSink.Write: pixel buffer length %d does not match %dx%d RGB", len(img.Pixels), img.Width, img.Height)
	}

	rowSize := (img.Width*3 + 3) &^ 3
	pixelDataSize := rowSize * img.Height
	fileSize := fileHeaderSize + infoHeaderSize + pixelDataSize

	buf := make([]byte, fileHeaderSize+infoHeaderSize)

	// file header
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[6:], 0) // reserved
	binary.LittleEndian.PutUint32(buf[10:], fileHeaderSize+infoHeaderSize)

	// info header (BITMAPINFOHEADER)
	binary.LittleEndian.PutUint32(buf[14:], infoHeaderSize)
	binary.LittleEndian.PutUint32(buf[18:], uint32(img.Width))
	binary.LittleEndian.PutUint32(buf[22:], uint32(img.Height)) // positive: bottom-up
	binary.LittleEndian.PutUint16(buf[26:], 1)                  // color planes
	binary.LittleEndian.PutUint16(buf[28:], 24)                 // bits per pixel
	binary.LittleEndian.PutUint32(buf[30:], 0)                  // no compression
	binary.LittleEndian.PutUint32(buf[34:], uint32(pixelDataSize))
	binary.LittleEndian.PutUint32(buf[38:], 2835) // ~72 DPI
	binary.LittleEndian.PutUint32(buf[42:], 2835)
	binary.LittleEndian.PutUint32(buf[46:], 0) // palette colors
	binary.LittleEndian.PutUint32(buf[50:], 0) // important colors

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("imagesink.BMPSink.Write: header: %w", err)
	}

	row := make([]byte, rowSize)
	for y := img.Height - 1; y >= 0; y-- {
		srcOff := y * img.Width * 3
		for x := 0; x < img.Width; x++ {
			r, g, b := img.Pixels[srcOff+x*3], img.Pixels[srcOff+x*3+1], img.Pixels[srcOff+x*3+2]
			row[x*3+0], row[x*3+1], row[x*3+2] = b, g, r // BMP stores BGR.
		}
		for i := img.Width * 3; i < rowSize; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("imagesink.BMPSink.Write: row %d: %w", y, err)
		}
	}
	return nil
}
