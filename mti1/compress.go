package mti1

import (
	"bytes"
	"compress/flate"
	"io"
)

// Compression identifies the payload compression mode (§3). Codes
// match the on-disk header encoding (§4.7).
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionDeflateRaw
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionDeflateRaw:
		return "deflate_raw"
	default:
		return "unknown"
	}
}

// ParseCompression maps an external compression name to its code.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "deflate_raw":
		return CompressionDeflateRaw, nil
	default:
		return 0, errf(InvalidFieldValue, "unknown compression %q", name)
	}
}

// compressionSupported probes whether the runtime can produce/consume
// mode. Raw DEFLATE is always available via compress/flate, but this
// stays a capability probe (rather than an assumption) per §9: "treat
// raw DEFLATE as a capability that may be absent from some runtimes."
func compressionSupported(c Compression) bool {
	switch c {
	case CompressionNone, CompressionDeflateRaw:
		return true
	default:
		return false
	}
}

// compressPayload compresses raw under mode c, producing the stored
// payload bytes.
func compressPayload(c Compression, raw []byte) ([]byte, error) {
	if !compressionSupported(c) {
		return nil, errf(UnsupportedCompression, "compression mode %s is not available", c)
	}
	switch c {
	case CompressionNone:
		return raw, nil
	case CompressionDeflateRaw:
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, wrapErr(CompressionFailed, "could not create deflate writer", err)
		}
		if _, err := w.Write(raw); err != nil {
			return nil, wrapErr(CompressionFailed, "deflate write failed", err)
		}
		if err := w.Close(); err != nil {
			return nil, wrapErr(CompressionFailed, "deflate close failed", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errf(InternalFailure, "unreachable compression mode %d", c)
	}
}

// decompressPayload decompresses stored bytes produced under mode c
// back into the uncompressed payload.
func decompressPayload(c Compression, stored []byte) ([]byte, error) {
	if !compressionSupported(c) {
		return nil, errf(UnsupportedCompression, "compression mode %s is not available", c)
	}
	switch c {
	case CompressionNone:
		return stored, nil
	case CompressionDeflateRaw:
		r := flate.NewReader(bytes.NewReader(stored))
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, wrapErr(DecompressionFailed, "deflate read failed", err)
		}
		return out, nil
	default:
		return nil, errf(InternalFailure, "unreachable compression mode %d", c)
	}
}
