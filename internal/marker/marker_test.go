package marker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqtt/common"
	icommon "sqtt/internal/common"
	"sqtt/internal/decoder"
	"sqtt/internal/packet"
	"sqtt/internal/sqtt"
	"sqtt/tests/helpers"
)

type warnLogger struct {
	common.NoOpLogger
	warnings []string
}

func (l *warnLogger) Warning(msg string) { l.warnings = append(l.warnings, msg) }

func (l *warnLogger) Logf(sev common.Severity, format string, args ...interface{}) {
	if sev == common.SeverityWarning {
		l.warnings = append(l.warnings, format)
	}
}

// word0 packs a first userdata word.
func word0(id Identifier, n int, api uint32) uint32 {
	return uint32(id) | uint32(n)<<4 | api<<7
}

func TestNewUserdata(t *testing.T) {
	_, err := NewUserdata(nil)
	assert.True(t, errors.Is(err, icommon.ErrCode(sqtt.ErrUserdataEmpty)))

	_, err = NewUserdata([]uint32{word0(IdentGeneralAPI, 3, 1), 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, icommon.ErrCode(sqtt.ErrUserdataLength)))
	assert.Contains(t, err.Error(), "userdata length 2 does not match metadata 3")

	u, err := NewUserdata([]uint32{word0(IdentBindPipeline, 2, 0xABCDE), 7})
	require.NoError(t, err)
	assert.Equal(t, IdentBindPipeline, u.ID())
	assert.Equal(t, 2, u.DeclaredLen())
	api, ok := u.APIType()
	assert.True(t, ok)
	assert.Equal(t, uint32(0xABCDE), api)

	u, err = NewUserdata([]uint32{word0(IdentSync, 1, 0x55)})
	require.NoError(t, err)
	_, ok = u.APIType()
	assert.False(t, ok, "one word markers carry no API type")
}

func TestTwoWordMarker(t *testing.T) {
	r := NewReassembler(nil)
	w0 := word0(IdentGeneralAPI, 2, 0x1234)
	require.NoError(t, r.PushRegWrite(RegUserdata2, w0, 4, 100))
	assert.Equal(t, 1, r.Pending())
	require.NoError(t, r.PushRegWrite(RegUserdata3, 0xFEED, 9, 180))

	require.Len(t, r.Events(), 1)
	ev := r.Events()[0]
	assert.Equal(t, IdentGeneralAPI, ev.ID)
	assert.Equal(t, uint32(0x1234), ev.APIType)
	assert.True(t, ev.HasAPIType)
	assert.Equal(t, []uint32{w0, 0xFEED}, ev.Words)
	assert.Equal(t, uint32(9), ev.Seq)
	assert.Equal(t, uint64(180), ev.Timestamp)
	assert.Zero(t, ev.Start)
	assert.Zero(t, ev.End)
	assert.Zero(t, r.Pending())
}

func TestOtherRegistersIgnored(t *testing.T) {
	r := NewReassembler(nil)
	require.NoError(t, r.PushRegWrite(0x1000, word0(IdentEvent, 1, 0), 0, 0))
	assert.Zero(t, r.Pending())
	assert.Empty(t, r.Events())
}

func TestInitiatorDesync(t *testing.T) {
	log := &warnLogger{}
	r := NewReassembler(&Config{Logger: log})

	require.NoError(t, r.PushRegWrite(RegUserdata2, word0(IdentGeneralAPI, 2, 7), 0, 0))
	r.PushInitiator(1, DefaultMarkerCode)
	r.PushInitiator(0, DefaultMarkerCode+1)
	assert.Equal(t, 1, r.Pending(), "non marker initiators leave the accumulator alone")

	r.PushInitiator(0, 0x7<<20|DefaultMarkerCode)
	assert.Zero(t, r.Pending())
	assert.Empty(t, r.Events())
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "userdata packet is incomplete")

	r.PushInitiator(0, DefaultMarkerCode)
	assert.Len(t, log.warnings, 1, "an empty accumulator is not a desync")
}

func TestOverlongPayloadDropped(t *testing.T) {
	log := &warnLogger{}
	r := NewReassembler(&Config{Logger: log})
	// declared length 0 never completes
	for i := 0; i < maxWords; i++ {
		require.NoError(t, r.PushRegWrite(RegUserdata2, 0, uint32(i), 0))
	}
	assert.Zero(t, r.Pending())
	assert.Empty(t, r.Events())
	assert.Len(t, log.warnings, 1)
}

func TestCustomRegisters(t *testing.T) {
	r := NewReassembler(&Config{Registers: []uint16{0x20}, MarkerCode: 9})
	require.NoError(t, r.PushRegWrite(RegUserdata2, word0(IdentEvent, 1, 0), 0, 0))
	assert.Empty(t, r.Events())
	require.NoError(t, r.PushRegWrite(0x20, word0(IdentEvent, 1, 0), 1, 0))
	assert.Len(t, r.Events(), 1)
}

func TestRunOverDecodedBuffer(t *testing.T) {
	b := &helpers.StreamBuilder{Junk: true}
	reg := func(r uint16, v uint32, dt uint64) {
		b.Add(packet.KindRegWrite, helpers.Fields{
			packet.FieldDelta: dt, packet.FieldIsWrite: 1,
			packet.FieldReg: uint64(r), packet.FieldValue: uint64(v),
		})
	}
	init := func(typ, val uint64) {
		b.Add(packet.KindInitiator, helpers.Fields{packet.FieldInitiatorType: typ, packet.FieldValue: val})
	}

	// complete marker interleaved with unrelated traffic
	init(0, DefaultMarkerCode)
	reg(RegUserdata2, word0(IdentBarrierStart, 2, 0x42), 1)
	b.Add(packet.KindWaveStart, helpers.Fields{packet.FieldThreads: 32})
	reg(0x2000, 1, 2)
	reg(RegUserdata3, 0x99, 3)
	// partial marker cut short by the next initiator
	reg(RegUserdata2, word0(IdentGeneralAPI, 2, 0x77), 1)
	init(0, DefaultMarkerCode)
	reg(RegUserdata2, word0(IdentCbEnd, 1, 0), 1)

	c, err := decoder.New(nil).Decode(0, b.Bytes(8))
	require.NoError(t, err)

	log := &warnLogger{}
	events, err := NewReassembler(&Config{Logger: log}).Run(c.RegWrites(), c.Initiators())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, IdentBarrierStart, events[0].ID)
	assert.Equal(t, uint32(0x42), events[0].APIType)
	assert.Equal(t, uint32(4), events[0].Seq)
	assert.Equal(t, uint64(6), events[0].Timestamp)

	assert.Equal(t, IdentCbEnd, events[1].ID)
	assert.False(t, events[1].HasAPIType)
	assert.Equal(t, uint32(7), events[1].Seq)
	assert.Len(t, log.warnings, 1)
}

func TestIdentifierString(t *testing.T) {
	assert.Equal(t, "GENERAL_API", IdentGeneralAPI.String())
	assert.Equal(t, "RESERVED6", IdentReserved6.String())
	assert.Equal(t, "IDENT_16", Identifier(16).String())
}

func TestIdentifierText(t *testing.T) {
	for _, id := range []Identifier{IdentEvent, IdentPresent, Identifier(99)} {
		text, err := id.MarshalText()
		require.NoError(t, err)
		var got Identifier
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, id, got)
	}
	var id Identifier
	assert.Error(t, id.UnmarshalText([]byte("NOPE")))
}
