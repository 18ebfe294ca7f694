package internal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x00, 0xE0,
		0xA2, 0x2A,
		0xD0, 0x15,
		0x01, 0x23,
		0x12, 0x00,
		0xFF,
	}

	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, program))

	expected := "0200: 00E0  CLS\n" +
		"0202: A22A  LD I, $22A\n" +
		"0204: D015  DRW V0, V1, $5\n" +
		"0206: 0123  .word $0123\n" +
		"0208: 1200  JP $200\n" +
		"020A: FF    .byte $FF\n"
	assert.Equal(t, expected, buf.String())
}

func TestDisassemble_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := Disassemble(&buf, make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.Equal(t, 0, buf.Len())
}
