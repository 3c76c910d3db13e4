package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	ar := NewMessages("ar")
	en := NewMessages("en")

	assert.Equal(t, "يرجى إدخال وصف للثيم", ar.Get(MsgInvalidInput))
	assert.Equal(t, "Please enter a theme description", en.Get(MsgInvalidInput))
	assert.Equal(t, ar.Get(MsgUnexpected), ar.Get("no_such_code"))
	assert.Equal(t, ar.Get(MsgParseError), NewMessages("fr").Get(MsgParseError))
	assert.Equal(t, ar.Get(MsgUnexpected), Messages{}.Get(MsgUnexpected))
}

func TestCatalogsHaveSameCodes(t *testing.T) {
	for code := range catalog["ar"] {
		_, ok := catalog["en"][code]
		assert.True(t, ok, code)
	}
	assert.Len(t, catalog["en"], len(catalog["ar"]))
}
