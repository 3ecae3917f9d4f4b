package glamour_test

import (
	"testing"

	"github.com/fwojciec/stratchat/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders lists and keeps Arabic text", func(t *testing.T) {
		t.Parallel()

		r, err := glamour.NewRenderer("notty", 0)
		require.NoError(t, err)

		out, err := r.Render("## الأهداف\n\n- تعزيز الأمن السيبراني\n- تطوير الحلول الذكية\n")

		require.NoError(t, err)
		assert.Contains(t, out, "الأهداف")
		assert.Contains(t, out, "تعزيز الأمن السيبراني")
	})

	t.Run("ascii style renders bold markers as text", func(t *testing.T) {
		t.Parallel()

		r, err := glamour.NewRenderer("ascii", 40)
		require.NoError(t, err)

		out, err := r.Render("**المشروع:** منصة")

		require.NoError(t, err)
		assert.Contains(t, out, "منصة")
	})
}
