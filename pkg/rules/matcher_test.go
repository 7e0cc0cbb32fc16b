package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateKeywords(t *testing.T) {
	ruleSet := []Rule{
		{
			Name:     "webhook-security",
			Kind:     KindSuggest,
			Priority: PriorityHigh,
			Keywords: []string{"hmac", "signature"},
			Message:  "Consider the webhook-security skill.",
		},
	}

	results := Evaluate("please verify the hmac signature", "", ruleSet)
	require.Len(t, results, 1)
	assert.Equal(t, "webhook-security", results[0].RuleName)
	assert.Equal(t, []string{"keyword:hmac", "keyword:signature"}, results[0].MatchedBy)
}

func TestEvaluateKeywordsCaseFoldAndTrim(t *testing.T) {
	ruleSet := []Rule{
		{Name: "r", Kind: KindSuggest, Keywords: []string{"  HMAC  "}},
	}

	results := Evaluate("Verify the hmac now", "", ruleSet)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"keyword:  HMAC  "}, results[0].MatchedBy)
}

func TestEvaluateIntentPatterns(t *testing.T) {
	ruleSet := []Rule{
		{
			Name:           "danger-guard",
			Kind:           KindBlock,
			Priority:       PriorityCritical,
			IntentPatterns: []string{"delete.*everything"},
		},
	}

	t.Run("matches case-insensitively", func(t *testing.T) {
		results := Evaluate("DELETE absolutely EVERYTHING", "", ruleSet)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"pattern:delete.*everything"}, results[0].MatchedBy)
	})

	t.Run("no match", func(t *testing.T) {
		results := Evaluate("delete one file", "", ruleSet)
		assert.Empty(t, results)
	})
}

func TestEvaluateInvalidPatternIsLocalized(t *testing.T) {
	ruleSet := []Rule{
		{
			Name:           "mixed",
			Kind:           KindSuggest,
			IntentPatterns: []string{"[invalid", "retry"},
		},
		{
			Name:     "other",
			Kind:     KindSuggest,
			Keywords: []string{"retry"},
		},
	}

	results := Evaluate("add retry logic", "", ruleSet)
	require.Len(t, results, 2)
	// The bad pattern is skipped; the valid one in the same rule still matches.
	assert.Equal(t, []string{"pattern:retry"}, results[0].MatchedBy)
	assert.Equal(t, []string{"keyword:retry"}, results[1].MatchedBy)
}

func TestEvaluateFilePaths(t *testing.T) {
	ruleSet := []Rule{
		{
			Name:      "webhook-security",
			Kind:      KindSuggest,
			FilePaths: []string{"**/webhooks/**/*.py", "**/api/**/*.py"},
		},
	}

	t.Run("glob match", func(t *testing.T) {
		results := Evaluate("", "app/webhooks/handlers/stripe.py", ruleSet)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"file:**/webhooks/**/*.py"}, results[0].MatchedBy)
	})

	t.Run("empty path yields no file evidence", func(t *testing.T) {
		results := Evaluate("", "", ruleSet)
		assert.Empty(t, results)
	})

	t.Run("bad glob is skipped", func(t *testing.T) {
		bad := []Rule{{Name: "r", Kind: KindSuggest, FilePaths: []string{"[", "**/*.py"}}}
		results := Evaluate("", "app/main.py", bad)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"file:**/*.py"}, results[0].MatchedBy)
	})
}

func TestEvaluateEvidenceOrder(t *testing.T) {
	ruleSet := []Rule{
		{
			Name:           "r",
			Kind:           KindSuggest,
			Keywords:       []string{"webhook"},
			IntentPatterns: []string{"verify.*webhook"},
			FilePaths:      []string{"**/*.py"},
		},
	}

	results := Evaluate("verify the webhook", "app/api/routes.py", ruleSet)
	require.Len(t, results, 1)
	// Keywords, then patterns, then file globs.
	assert.Equal(t, []string{
		"keyword:webhook",
		"pattern:verify.*webhook",
		"file:**/*.py",
	}, results[0].MatchedBy)
}

func TestEvaluateEmptyRuleNeverMatches(t *testing.T) {
	ruleSet := []Rule{{Name: "empty", Kind: KindSuggest}}

	for _, prompt := range []string{"", "anything at all", "empty"} {
		assert.Empty(t, Evaluate(prompt, "some/file.py", ruleSet))
	}
}

func TestEvaluateEmptyRuleSet(t *testing.T) {
	assert.Empty(t, Evaluate("verify hmac", "app/main.py", nil))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ruleSet := []Rule{
		{Name: "a", Kind: KindSuggest, Keywords: []string{"retry"}},
		{Name: "b", Kind: KindBlock, IntentPatterns: []string{"drop.*table"}},
	}

	first := Evaluate("add retry and drop the table", "x.py", ruleSet)
	second := Evaluate("add retry and drop the table", "x.py", ruleSet)
	assert.Equal(t, first, second)
}

func TestEvaluatePreservesRuleOrder(t *testing.T) {
	ruleSet := []Rule{
		{Name: "third", Kind: KindSuggest, Keywords: []string{"kafka"}},
		{Name: "first", Kind: KindSuggest, Keywords: []string{"kafka"}},
		{Name: "second", Kind: KindSuggest, Keywords: []string{"kafka"}},
	}

	results := Evaluate("tune kafka", "", ruleSet)
	require.Len(t, results, 3)
	assert.Equal(t, "third", results[0].RuleName)
	assert.Equal(t, "first", results[1].RuleName)
	assert.Equal(t, "second", results[2].RuleName)
}
