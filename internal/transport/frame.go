package transport

import (
	"io"

	"github.com/nmattia/docindex/internal/wire"
)

// ReadRequestFrame reads one whole request frame from r: the fixed
// header first (the framing authority), then exactly header.Len-headerSize
// more bytes. No length is inferred from the transport itself.
func ReadRequestFrame(r io.Reader) ([]byte, wire.ReqHeader, error) {
	header := make([]byte, wire.ReqHeaderSize)
	if err := ReadFull(r, header); err != nil {
		return nil, wire.ReqHeader{}, err
	}

	hdr, err := wire.DecodeReqHeader(header)
	if err != nil {
		return nil, wire.ReqHeader{}, wrapTransport(err)
	}

	if int(hdr.Len) < wire.ReqHeaderSize {
		return nil, wire.ReqHeader{}, wrapTransport(errShortFrame)
	}

	rest := make([]byte, int(hdr.Len)-wire.ReqHeaderSize)
	if err := ReadFull(r, rest); err != nil {
		return nil, wire.ReqHeader{}, err
	}

	return append(header, rest...), hdr, nil
}

// ReadResponseFrame reads one whole response frame from r, mirroring
// [ReadRequestFrame] for the shorter response header.
func ReadResponseFrame(r io.Reader) ([]byte, wire.RespHeader, error) {
	header := make([]byte, wire.RespHeaderSize)
	if err := ReadFull(r, header); err != nil {
		return nil, wire.RespHeader{}, err
	}

	hdr, err := wire.DecodeRespHeader(header)
	if err != nil {
		return nil, wire.RespHeader{}, wrapTransport(err)
	}

	if int(hdr.Len) < wire.RespHeaderSize {
		return nil, wire.RespHeader{}, wrapTransport(errShortFrame)
	}

	rest := make([]byte, int(hdr.Len)-wire.RespHeaderSize)
	if err := ReadFull(r, rest); err != nil {
		return nil, wire.RespHeader{}, err
	}

	return append(header, rest...), hdr, nil
}

// WriteFrame writes a complete frame (header + payload) in full.
func WriteFrame(w io.Writer, frame []byte) error {
	return WriteFull(w, frame)
}
