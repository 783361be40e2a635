package flash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOOrderAcrossRegistration(t *testing.T) {
	q := NewQueue()

	q.Add("info", "a")
	q.Add("error", "b")
	q.Add("info", "c")

	require.Equal(t, 3, q.Pending())

	var got []Delivered
	q.Deliver(func(d Delivered) {
		got = append(got, d)
	})

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.Equal(t, "c", got[2].Text)
	assert.Equal(t, "error", got[1].Kind)
	assert.Equal(t, 0, q.Pending(), "buffer must be cleared after flush")
}

func TestDirectDeliveryAfterRegistration(t *testing.T) {
	q := NewQueue()

	var got []Delivered
	q.Deliver(func(d Delivered) {
		got = append(got, d)
	})

	q.Add("success", "saved")

	require.Len(t, got, 1)
	assert.Equal(t, "saved", got[0].Text)
	assert.Equal(t, 0, q.Pending(), "delivering state must bypass the buffer")
}

func TestSequenceIDsIncrease(t *testing.T) {
	q := NewQueue()
	q.Add("info", "first")

	var seqs []uint64
	q.Deliver(func(d Delivered) {
		seqs = append(seqs, d.Seq)
	})
	q.Add("info", "second")
	q.Add("info", "third")

	require.Len(t, seqs, 3)
	assert.Less(t, seqs[0], seqs[1])
	assert.Less(t, seqs[1], seqs[2])
}

func TestReregistrationReplacesWithoutReflush(t *testing.T) {
	q := NewQueue()
	q.Add("info", "buffered")

	first := 0
	q.Deliver(func(Delivered) { first++ })
	require.Equal(t, 1, first)

	second := 0
	q.Deliver(func(Delivered) { second++ })

	assert.Equal(t, 0, second, "re-registration must not re-flush")

	q.Add("info", "live")
	assert.Equal(t, 1, second, "new callback must receive later messages")
	assert.Equal(t, 1, first, "old callback must not")
}

func TestDeliverNilPanics(t *testing.T) {
	q := NewQueue()
	assert.Panics(t, func() { q.Deliver(nil) })
}

func TestTimeouts(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q := NewQueue()

		var got []Delivered
		q.Deliver(func(d Delivered) { got = append(got, d) })

		q.Info("i")
		q.Error("e")

		require.Len(t, got, 2)
		assert.Equal(t, 5*time.Second, got[0].Timeout)
		assert.Equal(t, 10*time.Second, got[1].Timeout, "errors linger longer by default")
	})

	t.Run("Override", func(t *testing.T) {
		q := NewQueue(WithTimeoutFunc(func(kind string) time.Duration {
			return time.Second
		}))

		var got Delivered
		q.Deliver(func(d Delivered) { got = d })
		q.Error("e")

		assert.Equal(t, time.Second, got.Timeout)
	})
}

func TestCSSClass(t *testing.T) {
	t.Run("DefaultUsesAlias", func(t *testing.T) {
		q := NewQueue(WithAliases(map[string]string{"error": "danger"}))

		assert.Equal(t, "alert alert-danger", q.CSSClass("error"))
	})

	t.Run("FallsBackToKind", func(t *testing.T) {
		q := NewQueue()
		assert.Equal(t, "alert alert-notice", q.CSSClass("notice"))
	})

	t.Run("SetAlias", func(t *testing.T) {
		q := NewQueue()
		q.SetAlias("info", "primary")

		assert.Equal(t, "primary", q.Alias("info"))
		assert.Equal(t, "alert alert-primary", q.CSSClass("info"))
	})

	t.Run("ClassFuncOverride", func(t *testing.T) {
		q := NewQueue(
			WithAliases(map[string]string{"error": "danger"}),
			WithClassFunc(func(kind, alias string) string {
				return "toast toast--" + alias
			}),
		)

		assert.Equal(t, "toast toast--danger", q.CSSClass("error"))
	})
}

func TestKindHelpers(t *testing.T) {
	q := NewQueue()

	var kinds []string
	q.Deliver(func(d Delivered) { kinds = append(kinds, d.Kind) })

	q.Success("s")
	q.Error("e")
	q.Warning("w")
	q.Info("i")

	assert.Equal(t, []string{"success", "error", "warning", "info"}, kinds)
}

func TestNoDeduplication(t *testing.T) {
	q := NewQueue()
	q.Add("info", "same")
	q.Add("info", "same")

	count := 0
	q.Deliver(func(Delivered) { count++ })

	assert.Equal(t, 2, count, "identical messages must both deliver")
}
