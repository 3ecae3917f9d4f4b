package knowledge_test

import (
	"testing"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(t *testing.T, k *stratchat.Knowledge, prompt string) string {
	t.Helper()
	e, ok := k.Base.Get(prompt)
	require.True(t, ok, "no entry for %q", prompt)
	return e.Completion
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	k := loadFixture(t)

	t.Run("vision and mission", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "رؤية رقمية رائدة", completion(t, k, "ما هي رؤية التحول الرقمي؟"))
		assert.Equal(t, "رؤية رقمية رائدة", completion(t, k, "رؤية التحول الرقمي للهيئة"))
		assert.Equal(t, "رسالة الهيئة", completion(t, k, "رسالة التحول الرقمي"))

		e, ok := k.Base.Get("ماهي رؤية استراتيجية التحول الرقمي")
		require.True(t, ok)
		assert.Equal(t, "digitalTransformationStrategy.strategicHouse.vision", e.SourcePath)
	})

	t.Run("pillars linked to objectives", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "ربط الركائز بالأهداف الاستراتيجية")

		assert.Contains(t, c, "## البيت الاستراتيجي\n\n")
		assert.Contains(t, c, "### ركيزة: بيئة موثوقة\n**الوصف:** وصف الركيزة\n")
		assert.Contains(t, c, "- **SO2**: تطوير الحلول الذكية\n")
	})

	t.Run("objectives listing", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "قائمة الاهداف الاستراتيجية للتحول الرقمي")

		assert.Contains(t, c, "مقدمة الأهداف\n\n")
		assert.Contains(t, c, "### SO1: تعزيز الأمن السيبراني\n**الركيزة الاستراتيجية:** بيئة موثوقة\n**الإدارة المسؤولة (المالك):** إدارة التقنية\n")
	})

	t.Run("roadmap year aliases", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "مشاريع السنة الاولى")

		assert.Contains(t, c, "## مشاريع السنة الاولى (2025)\n\n")
		assert.Contains(t, c, "- منصة مصادر البيانات (المعرف: PR-01)\n- بوابة المتطوعين (المعرف: PR-02)")
		assert.Contains(t, c, "**التكلفة الإجمالية المقدرة لمشاريع السنة الاولى (2025):** 1,000,000 ر.س.\n")
		assert.Contains(t, c, "**إجمالي عدد المشاريع في السنة الاولى (2025):** 2.\n")
		for _, alias := range []string{
			"مشاريع عام 2025",
			"ما هي مشاريع سنة 2025؟",
			"ما هي مشاريع السنة الاولى 2025؟",
			"مشاريع السنة الاولى عام 2025",
		} {
			assert.Equal(t, c, completion(t, k, alias), alias)
		}
	})

	t.Run("project profile", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, `ما هي تفاصيل مشروع "منصة مصادر البيانات"؟`)

		for _, want := range []string{
			"## تفاصيل مشروع: منصة مصادر البيانات (المعرف: PR-01)\n\n",
			"**التكلفة المقدرة:** 500000 ريال سعودي\n",
			"**مدة التنفيذ المقدرة:** 12 شهرًا\n",
			"**سنة التنفيذ المخطط لها:** السنة الاولى (2025).\n",
			"### المبادرة الأم: مبادرة حوكمة البيانات\n**وصف وأهداف المبادرة:** وصف المبادرة\n",
			"- **SO1 تعزيز الأمن السيبراني** (الركيزة: بيئة موثوقة)\n",
			"- **KPI-1:** نسبة الحوادث الأمنية\n",
			"**درجة أهمية المشروع (الأولوية):** عالية\n\n",
			"#### تحدي/مشكلة (فجوة): تشتت البيانات\n- **التأثير السلبي الحالي:** بطء القرار\n",
			knowledge.VisionSectionHeader,
			"- **حكومة فعالة:** توحيد مصادر البيانات لدعم اتخاذ القرار في الهيئة\n",
		} {
			assert.Contains(t, c, want)
		}
	})

	t.Run("project aliases share the profile", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "مشروع PR-01")

		for _, alias := range []string{
			knowledge.ProjectVisionPrompt("منصة مصادر البيانات"),
			`ما هو مشروع "البيانات"؟`,
			"ما هو مشروع مصادر؟",
			`هل مشروع "منصة مصادر البيانات" ذو أولوية عالية؟`,
			`في أي عام (2025) يخطط لتنفيذ مشروع "منصة مصادر البيانات"؟`,
		} {
			assert.Equal(t, c, completion(t, k, alias), alias)
		}
	})

	t.Run("project with unknown initiative", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "تفاصيل PR-02")

		assert.Contains(t, c, "**المبادرة الأم:** مبادرة غير موثقة (لم يتم العثور على تفاصيل إضافية لهذه المبادرة).")
		assert.NotContains(t, c, knowledge.VisionSectionHeader)
	})

	t.Run("initiative profile", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "تفاصيل المبادرة IN-01")

		assert.Contains(t, c, "**عدد المشاريع التابعة:** 2\n")
		assert.Contains(t, c, "- منصة مصادر البيانات (المعرف: PR-01)\n")
		assert.Contains(t, c, "#### فجوة: تشتت البيانات\n")
		assert.Equal(t, c, completion(t, k, `ما هي مبادرة "حوكمة البيانات"؟`))
	})

	t.Run("objective vision only with alignment data", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, knowledge.ObjectiveVisionPrompt("تعزيز الأمن السيبراني"))
		assert.Contains(t, c, knowledge.ObjectiveVisionHeader+` "تعزيز الأمن السيبراني" (المعرف: SO1) في رؤية المملكة 2030`)

		_, ok := k.Base.Get(knowledge.ObjectiveVisionPrompt("تطوير الحلول الذكية"))
		assert.False(t, ok)
	})

	t.Run("methodology with default title", func(t *testing.T) {
		t.Parallel()

		c := completion(t, k, "منهجية بناء الاستراتيجية")

		assert.Contains(t, c, "## منهجية تطوير استراتيجية التحول الرقمي\n\nتمت المنهجية على مراحل\n\n")
		assert.Contains(t, c, "### الخطوة 1: التحليل\n**الوصف:** تحليل الوضع الراهن\n")
	})

	t.Run("curated entries replace generic ones in place", func(t *testing.T) {
		t.Parallel()

		kb := stratchat.NewKnowledgeBase()
		kb.Put(stratchat.Entry{Prompt: "رؤية التحول الرقمي", Completion: "generic"})
		kb.Put(stratchat.Entry{Prompt: "other", Completion: "x"})

		knowledge.Synthesize(knowledge.Strategy{
			House: knowledge.House{Present: true, Vision: "curated"},
		}, kb)

		entries := kb.Entries()
		assert.Equal(t, "curated", entries[0].Completion)
		assert.Equal(t, "other", entries[1].Prompt)
	})
}
