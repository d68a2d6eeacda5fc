package taxid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("strips punctuation", func(t *testing.T) {
		assert.Equal(t, "11858570000133", Normalize("11.858.570/0001-33"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
	})

	t.Run("no digits at all", func(t *testing.T) {
		assert.Equal(t, "", Normalize("n/a"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Normalize("11.858.570/0001-33")
		assert.Equal(t, once, Normalize(once))
	})

	t.Run("mixed garbage", func(t *testing.T) {
		assert.Equal(t, "11858570000133", Normalize(" CNPJ: 11858570000133 "))
	})
}

func TestFormat(t *testing.T) {
	t.Run("14 digits gains canonical punctuation", func(t *testing.T) {
		assert.Equal(t, "11.858.570/0001-33", Format("11858570000133"))
	})

	t.Run("already formatted round-trips", func(t *testing.T) {
		assert.Equal(t, "11.858.570/0001-33", Format("11.858.570/0001-33"))
	})

	t.Run("short input unchanged", func(t *testing.T) {
		assert.Equal(t, "12345", Format("12345"))
	})

	t.Run("long input unchanged", func(t *testing.T) {
		assert.Equal(t, "118585700001339", Format("118585700001339"))
	})

	t.Run("empty unchanged", func(t *testing.T) {
		assert.Equal(t, "", Format(""))
	})
}

func TestBelongsToGroup(t *testing.T) {
	t.Run("same root matches regardless of punctuation", func(t *testing.T) {
		assert.True(t, BelongsToGroup("11.858.570/0001-33", "11858570"))
		assert.True(t, BelongsToGroup("11858570000214", "11858570"))
	})

	t.Run("different root does not match", func(t *testing.T) {
		assert.False(t, BelongsToGroup("22.333.444/0001-55", "11858570"))
	})

	t.Run("empty root matches nothing", func(t *testing.T) {
		assert.False(t, BelongsToGroup("11858570000133", ""))
	})
}
