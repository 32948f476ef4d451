package table

import (
	"encoding/binary"
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/nihei9/lrforge/grammar"
)

// Encode serializes a Table to its binary form so a generated parser
// can ship a prebuilt table instead of rebuilding the automaton at
// startup. The wire format is Table's own MarshalBinary, wrapped in
// REZI's self-describing binary envelope the way
// dekarrin-tunaq/server/dao/sqlite persists a game.State
// (github.com/dekarrin/rezi, sqlite.go's convertToDB_GameStatePtr).
func Encode(t *Table) []byte {
	return rezi.EncBinary(t)
}

// Decode reverses Encode.
func Decode(data []byte) (*Table, error) {
	t := &Table{}
	n, err := rezi.DecBinary(data, t)
	if err != nil {
		return nil, fmt.Errorf("table: decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("table: decode: consumed %d/%d bytes", n, len(data))
	}
	return t, nil
}

// MarshalBinary implements encoding.BinaryMarshaler with a hand-rolled
// varint/length-prefixed layout, in the style of
// dekarrin-tunaq/internal/tunascript/binary.go's encBinaryInt/
// encBinaryString: every variable-length field is preceded by its byte
// count so decoding never has to guess where it ends.
func (t *Table) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = appendVarint(buf, int64(t.EOI))
	buf = appendVarint(buf, int64(t.EOG))

	buf = appendVarint(buf, int64(len(t.WeakToStrong)))
	for weak, strong := range t.WeakToStrong {
		buf = appendVarint(buf, int64(weak))
		buf = appendVarint(buf, int64(strong))
	}

	buf = appendVarint(buf, int64(len(t.States)))
	for _, st := range t.States {
		buf = appendVarint(buf, int64(len(st.Actions)))
		for _, a := range st.Actions {
			buf = appendAction(buf, a)
		}
	}
	return buf, nil
}

// appendAction writes one action, recursing through its Fallback chain
// so a guard's next-best action (table.Build's pickByPriority result)
// survives a round trip through a generated parser's shipped table.
func appendAction(buf []byte, a Action) []byte {
	buf = appendVarint(buf, int64(a.Kind))
	buf = appendVarint(buf, int64(a.Symbol))
	buf = appendVarint(buf, int64(a.State))
	buf = appendVarint(buf, int64(a.Rule))
	buf = append(buf, boolByte(a.Accept))
	buf = append(buf, boolByte(a.Fallback != nil))
	if a.Fallback != nil {
		buf = appendAction(buf, *a.Fallback)
	}
	return buf
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (t *Table) UnmarshalBinary(data []byte) error {
	r := &reader{data: data}

	eoi, err := r.varint()
	if err != nil {
		return err
	}
	eog, err := r.varint()
	if err != nil {
		return err
	}
	t.EOI = grammar.ItemID(eoi)
	t.EOG = grammar.ItemID(eog)

	weakCount, err := r.varint()
	if err != nil {
		return err
	}
	t.WeakToStrong = make(map[grammar.ItemID]grammar.ItemID, weakCount)
	for i := int64(0); i < weakCount; i++ {
		weak, err := r.varint()
		if err != nil {
			return err
		}
		strong, err := r.varint()
		if err != nil {
			return err
		}
		t.WeakToStrong[grammar.ItemID(weak)] = grammar.ItemID(strong)
	}

	stateCount, err := r.varint()
	if err != nil {
		return err
	}
	t.States = make([]StateTable, stateCount)
	for i := int64(0); i < stateCount; i++ {
		actionCount, err := r.varint()
		if err != nil {
			return err
		}
		actions := make([]Action, actionCount)
		for j := int64(0); j < actionCount; j++ {
			a, err := r.action()
			if err != nil {
				return err
			}
			actions[j] = a
		}
		t.States[i] = StateTable{Actions: actions}
	}
	return nil
}

func appendVarint(buf []byte, v int64) []byte {
	return binary.AppendVarint(buf, v)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type reader struct {
	data []byte
}

func (r *reader) varint() (int64, error) {
	v, n := binary.Varint(r.data)
	if n <= 0 {
		return 0, fmt.Errorf("table: truncated varint")
	}
	r.data = r.data[n:]
	return v, nil
}

func (r *reader) boolByte() (bool, error) {
	if len(r.data) < 1 {
		return false, fmt.Errorf("table: truncated bool")
	}
	b := r.data[0] != 0
	r.data = r.data[1:]
	return b, nil
}

func (r *reader) action() (Action, error) {
	kind, err := r.varint()
	if err != nil {
		return Action{}, err
	}
	symbol, err := r.varint()
	if err != nil {
		return Action{}, err
	}
	state, err := r.varint()
	if err != nil {
		return Action{}, err
	}
	rule, err := r.varint()
	if err != nil {
		return Action{}, err
	}
	accept, err := r.boolByte()
	if err != nil {
		return Action{}, err
	}
	hasFallback, err := r.boolByte()
	if err != nil {
		return Action{}, err
	}
	a := Action{
		Kind:   Kind(kind),
		Symbol: grammar.ItemID(symbol),
		State:  int(state),
		Rule:   int(rule),
		Accept: accept,
	}
	if hasFallback {
		fb, err := r.action()
		if err != nil {
			return Action{}, err
		}
		a.Fallback = &fb
	}
	return a, nil
}
