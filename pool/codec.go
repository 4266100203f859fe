package pool

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/hostbind/errors"
)

// snapshotVersion is bumped whenever the encoded layout changes.
const snapshotVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("pool: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type snapshot struct {
	Version  uint     `cbor:"1,keyasint"`
	Strings  []string `cbor:"2,keyasint,omitempty"`
	Numbers  []int32  `cbor:"3,keyasint,omitempty"`
	Bytecode []byte   `cbor:"4,keyasint,omitempty"`
}

// Marshal encodes p as a canonical CBOR snapshot.
func Marshal(p *Pool) ([]byte, error) {
	return cborEncMode.Marshal(snapshot{
		Version:  snapshotVersion,
		Strings:  p.strings,
		Numbers:  p.numbers,
		Bytecode: p.bytecode,
	})
}

// Unmarshal decodes a snapshot produced by Marshal.
func Unmarshal(data []byte) (*Pool, error) {
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, errors.ParseFailed("pool snapshot", err)
	}
	if s.Version != snapshotVersion {
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Value(s.Version).
			Detail("snapshot version %d, want %d", s.Version, snapshotVersion).
			Build()
	}
	return New(s.Strings, s.Numbers, s.Bytecode)
}
