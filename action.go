package governance

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Action is a typed governance action. Each action encodes its own header.
type Action interface {
	Header() Header
	Encode() ([]byte, error)
}

type decodeFunc func(data []byte) (Action, error)

func adapt[T Action](fn func([]byte) (T, error)) decodeFunc {
	return func(data []byte) (Action, error) {
		a, err := fn(data)
		if err != nil {
			return nil, err
		}

		return a, nil
	}
}

var decoders = map[ActionName]decodeFunc{
	ActionExecutePostedVaa:                      adapt(DecodeExecutePostedVaa),
	ActionUpgradeContract:                       DecodeUpgradeContract,
	ActionAuthorizeGovernanceDataSourceTransfer: adapt(DecodeAuthorizeGovernanceDataSourceTransfer),
	ActionSetDataSources:                        adapt(DecodeSetDataSources),
	ActionSetFee:                                adapt(DecodeSetFee),
	ActionSetValidPeriod:                        adapt(DecodeSetValidPeriod),
	ActionRequestGovernanceDataSourceTransfer:   adapt(DecodeRequestGovernanceDataSourceTransfer),
	ActionSetWormholeAddress:                    DecodeSetWormholeAddress,
	ActionSetFeeInToken:                         adapt(DecodeSetFeeInToken),
	ActionSetTransactionFee:                     adapt(DecodeSetTransactionFee),
	ActionWithdrawFee:                           adapt(DecodeWithdrawFee),
	ActionExecute:                               adapt(DecodeEvmExecute),
	ActionUpgradeSuiLazerContract:               adapt(DecodeUpgradeSuiLazerContract),
	ActionUpdateTrustedSigner:                   DecodeUpdateTrustedSigner,
	ActionUpgradeCardanoLazerContract:           adapt(DecodeUpgradeCardanoLazerContract),
	ActionLazerExecute:                          adapt(DecodeLazerExecute),
}

// DecodeAction decodes a complete governance message. It never panics: a malformed
// header, a malformed payload or an action without a registered decoder all
// surface as a non-nil error and a nil Action.
func DecodeAction(data []byte) (Action, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	decode, ok := decoders[header.Action]
	if !ok {
		return nil, NewUnsupportedActionError(header.Action)
	}

	return decode(data)
}

// encodeAction writes the header followed by whatever write appends.
func encodeAction(h Header, write func(enc *bin.Encoder) error) ([]byte, error) {
	hdr, err := h.Encode()
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(hdr)
	if write != nil {
		if err := write(bin.NewBinEncoder(buf)); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", h.Action, err)
		}
	}

	return buf.Bytes(), nil
}

// payloadReader reads big-endian fields following a governance header and turns
// every short read into ErrInvalidPayload.
type payloadReader struct {
	action ActionName
	dec    *bin.Decoder
}

// openPayload validates the header of data against the expected action.
func openPayload(data []byte, want ActionName) (Header, *payloadReader, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	if header.Action != want {
		return Header{}, nil, NewActionMismatchError(want, header.Action)
	}

	return header, &payloadReader{action: want, dec: bin.NewBinDecoder(data[HeaderSize:])}, nil
}

func (r *payloadReader) remaining() int {
	return r.dec.Remaining()
}

func (r *payloadReader) bytes(field string, n int) ([]byte, error) {
	if n < 0 || r.dec.Remaining() < n {
		return nil, malformed(r.action, "%s: need %d bytes, have %d", field, n, r.dec.Remaining())
	}
	if n == 0 {
		return []byte{}, nil
	}

	b, err := r.dec.ReadNBytes(n)
	if err != nil {
		return nil, malformed(r.action, "%s: %v", field, err)
	}

	return bytes.Clone(b), nil
}

func (r *payloadReader) rest() []byte {
	b, _ := r.bytes("remainder", r.dec.Remaining())
	return b
}

func (r *payloadReader) u8(field string) (uint8, error) {
	if r.dec.Remaining() < 1 {
		return 0, malformed(r.action, "%s: truncated", field)
	}

	return r.dec.ReadUint8()
}

func (r *payloadReader) u16(field string) (uint16, error) {
	if r.dec.Remaining() < 2 {
		return 0, malformed(r.action, "%s: truncated", field)
	}

	return r.dec.ReadUint16(bin.BE)
}

func (r *payloadReader) u32(field string) (uint32, error) {
	if r.dec.Remaining() < 4 {
		return 0, malformed(r.action, "%s: truncated", field)
	}

	return r.dec.ReadUint32(bin.BE)
}

func (r *payloadReader) u64(field string) (uint64, error) {
	if r.dec.Remaining() < 8 {
		return 0, malformed(r.action, "%s: truncated", field)
	}

	return r.dec.ReadUint64(bin.BE)
}

// done rejects trailing bytes after a fixed layout.
func (r *payloadReader) done() error {
	if n := r.dec.Remaining(); n != 0 {
		return malformed(r.action, "%d trailing bytes", n)
	}

	return nil
}

// feePair is the (value, expo) pair shared by the fee setting actions.
func (r *payloadReader) feePair() (uint64, uint64, error) {
	value, err := r.u64("value")
	if err != nil {
		return 0, 0, err
	}
	expo, err := r.u64("expo")
	if err != nil {
		return 0, 0, err
	}

	return value, expo, nil
}

func writeFeePair(enc *bin.Encoder, value, expo uint64) error {
	if err := enc.WriteUint64(value, bin.BE); err != nil {
		return err
	}

	return enc.WriteUint64(expo, bin.BE)
}
