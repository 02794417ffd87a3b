package marker

import (
	"fmt"

	"sqtt/internal/common"
	"sqtt/internal/sqtt"
)

const (
	idMask      = 1<<4 - 1
	lenShift    = 4
	lenMask     = 1<<3 - 1
	apiShift    = 7
	apiMask     = 1<<20 - 1
	minAPIWords = 2
)

// DeclaredLen returns the word count declared in bits [4:6] of the first
// userdata word.
func DeclaredLen(word0 uint32) int {
	return int(word0 >> lenShift & lenMask)
}

// Userdata is one complete marker payload.
type Userdata struct {
	words []uint32
}

// NewUserdata checks that words holds exactly the number of words declared
// by its first word.
func NewUserdata(words []uint32) (*Userdata, error) {
	if len(words) == 0 {
		return nil, common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrUserdataEmpty, "userdata is empty")
	}
	if n := DeclaredLen(words[0]); n != len(words) {
		return nil, common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrUserdataLength,
			fmt.Sprintf("userdata length %d does not match metadata %d", len(words), n))
	}
	return &Userdata{words: words}, nil
}

// ID returns the marker identifier.
func (u *Userdata) ID() Identifier {
	return Identifier(u.words[0] & idMask)
}

// DeclaredLen returns the word count declared by the payload.
func (u *Userdata) DeclaredLen() int {
	return DeclaredLen(u.words[0])
}

// APIType returns bits [7:26] of the first word. The second result is
// false for payloads shorter than two words, which carry no API type.
func (u *Userdata) APIType() (uint32, bool) {
	return u.words[0] >> apiShift & apiMask, u.DeclaredLen() >= minAPIWords
}

// Words returns the raw payload. The slice must not be modified.
func (u *Userdata) Words() []uint32 {
	return u.words
}
