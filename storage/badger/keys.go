package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/unistroke/core"
)

// Key prefixes for different data types
const (
	templatePrefix      = "tpl"
	templateOrderPrefix = "tplord"
	templateNamePrefix  = "tplnam"
	templateSeq         = "tplseq"
)

// makeTemplateKey generates a key for a raw template by ID.
func makeTemplateKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", templatePrefix, id))
}

// templateKeyPrefix is the common prefix of every primary template key.
func templateKeyPrefix() []byte {
	return []byte(templatePrefix + ":")
}

// makeTemplateOrderKey generates a key for the insertion order index.
// Format: prefix:seq
func makeTemplateOrderKey(seq uint64) []byte {
	prefix := []byte(templateOrderPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// templateOrderKeyPrefix is the common prefix of every order index key.
func templateOrderKeyPrefix() []byte {
	return []byte(templateOrderPrefix + ":")
}

// makeTemplateNameKey generates a composite key for the name index.
// Format: prefix:len(name):name:seq
// The length keeps one name from being a prefix of another.
func makeTemplateNameKey(name string, seq uint64) []byte {
	partial := makePartialTemplateNameKey(name)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialTemplateNameKey generates a partial key for name queries.
// Format: prefix:len(name):name
func makePartialTemplateNameKey(name string) []byte {
	prefix := []byte(templateNamePrefix + ":")
	buf := make([]byte, len(prefix)+4+len(name))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint32(buf[offset:], uint32(len(name)))
	offset += 4
	copy(buf[offset:], name)
	return buf
}
